package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"warasin/cmd/internal/forms"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <schema> [file|-]",
		Short: "Validate a form submission",
		Long: fmt.Sprintf(`Validate a JSON form against one of the gateway's schemas.
The input is read from file, or from stdin when file is "-" or omitted.

Schemas: %s`, strings.Join(forms.Names(), ", ")),
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ok := forms.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown schema %q (want one of: %s)", args[0], strings.Join(forms.Names(), ", "))
			}

			in := cmd.InOrStdin()
			if len(args) == 2 && args[1] != "-" {
				f, err := os.Open(args[1])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			return runValidate(cmd.OutOrStdout(), s, in)
		},
	}
}

func runValidate(out io.Writer, s forms.Schema, in io.Reader) error {
	_, err := s.Check(in)
	if err == nil {
		fmt.Fprintf(out, "%s: valid\n", s.Name)
		return nil
	}

	var fieldErrs forms.Errors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			fmt.Fprintf(out, "%s: %s\n", fe.Field, fe.Message)
		}
		return fmt.Errorf("%s: %d invalid field(s)", s.Name, len(fieldErrs))
	}
	return fmt.Errorf("%s: %w", s.Name, err)
}
