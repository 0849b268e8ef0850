package reporter

import "fmt"

// template renders the message body for a MsgID given zero or more
// formatting arguments. Bodies are carried verbatim from
// original_source/src/reporter.rs's msg/msg_s functions rather than
// reinvented, per the checker's "supplemented features" carryover.
func template(id MsgID, args ...any) string {
	switch id {
	case ErrFile:
		return fmt.Sprintf("Unable to open file %s.", arg(args, 0))
	case ErrToken:
		return fmt.Sprintf("Unable to parse token %s.", arg(args, 0))
	case ErrSyntax:
		return fmt.Sprintf("Unexpected %s in %s.", arg(args, 0), arg(args, 1))
	case ErrNotFound:
		return fmt.Sprintf("%s not found.", arg(args, 0))
	case ErrImplicit:
		return fmt.Sprintf("Implicit %s conflicts with explicit declaration.", arg(args, 0))
	case ErrArgMiss:
		return fmt.Sprintf("Missing port in instance of %s : %s", arg(args, 0), arg(args, 1))
	case ErrArgExtra:
		return fmt.Sprintf("Too many ports in instance of %s : expecting %s", arg(args, 0), arg(args, 1))
	case WarnUnused:
		return fmt.Sprintf("%s is declared but never used.", arg(args, 0))
	case InfoStatus:
		return fmt.Sprintf("%s", arg(args, 0))
	case DbgSkip:
		return fmt.Sprintf("Skipping unhandled construct %s.", arg(args, 0))
	case DbgStatus:
		return fmt.Sprintf("%s", arg(args, 0))
	default:
		return fmt.Sprintf("%v", args)
	}
}

func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return ""
}
