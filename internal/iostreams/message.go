package iostreams

import "fmt"

// PrintSuccess prints a success message to stderr with a checkmark icon.
// With colors: ✓ message
// Without colors: [ok] message
func (ios *IOStreams) PrintSuccess(format string, args ...any) error {
	cs := ios.ColorScheme()
	msg := fmt.Sprintf(format, args...)
	_, err := fmt.Fprintln(ios.ErrOut, cs.SuccessIconWithColor(msg))
	return err
}

// PrintWarning prints a warning message to stderr with an exclamation icon.
func (ios *IOStreams) PrintWarning(format string, args ...any) error {
	cs := ios.ColorScheme()
	msg := fmt.Sprintf(format, args...)
	_, err := fmt.Fprintln(ios.ErrOut, cs.WarningIconWithColor(msg))
	return err
}

// PrintInfo prints an informational message to stderr with an info icon.
func (ios *IOStreams) PrintInfo(format string, args ...any) error {
	cs := ios.ColorScheme()
	msg := fmt.Sprintf(format, args...)
	_, err := fmt.Fprintln(ios.ErrOut, cs.InfoIconWithColor(msg))
	return err
}

// PrintFailure prints an error message to stderr with an X icon.
func (ios *IOStreams) PrintFailure(format string, args ...any) error {
	cs := ios.ColorScheme()
	msg := fmt.Sprintf(format, args...)
	_, err := fmt.Fprintln(ios.ErrOut, cs.FailureIconWithColor(msg))
	return err
}
