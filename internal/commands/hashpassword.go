package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

func addHashPassword(topLevel *cobra.Command) {
	fromStdin := false
	cost := bcrypt.DefaultCost

	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Hash a password for basic_auth.password_hash.",
		Long: "Prompts for a password twice and prints a bcrypt hash to paste into the\n" +
			"basic_auth.password_hash key of the config file.",
		Example: `
weekendly hash-password
echo 's3cret' | weekendly hash-password --stdin
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				password string
				err      error
			)
			if fromStdin {
				password, err = readLine(cmd.InOrStdin())
			} else {
				password, err = promptPassword(cmd.ErrOrStderr())
			}
			if err != nil {
				return err
			}
			if password == "" {
				return errors.New("password cannot be empty")
			}

			hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "password_hash: %q\n", string(hash))
			return nil
		},
	}
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read the password from the first line of stdin instead of prompting.")
	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost.")

	topLevel.AddCommand(cmd)
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptPassword reads the password twice without echo.
func promptPassword(prompts io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal; use --stdin")
	}

	fmt.Fprint(prompts, "Enter password:   ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(prompts)
	if err != nil {
		return "", err
	}
	fmt.Fprint(prompts, "Confirm password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(prompts)
	if err != nil {
		return "", err
	}
	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}
