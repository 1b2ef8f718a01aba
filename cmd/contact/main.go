package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/folio/backend/internal/client"
	"github.com/folio/backend/internal/config"
	"github.com/folio/backend/internal/logging"
	"github.com/folio/backend/pkg/contactform"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		slog.SetDefault(logging.New(os.Stderr, "contact-cli", ""))
		logging.Fatal("load config failed", "error", err)
	}
	slog.SetDefault(logging.New(os.Stderr, "contact-cli", cfg.LogLevel))

	if err := newRootCommand(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	apiURL  string
	timeout time.Duration
}

func (o *rootOptions) client() *client.Client {
	return client.New(o.apiURL, client.WithTimeout(o.timeout))
}

func newRootCommand(cfg config.ClientConfig) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "contact",
		Short:         "Send and read contact-form submissions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", cfg.APIURL, "contact API base URL")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", cfg.Timeout, "request timeout")

	cmd.AddCommand(newSubmitCommand(opts))
	cmd.AddCommand(newListCommand(opts))
	return cmd
}

func newSubmitCommand(opts *rootOptions) *cobra.Command {
	var (
		name, email, message string
		noPreCheck           bool
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit the contact form",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrlOpts := []client.ControllerOption{
				client.WithOnChange(func(s client.State) {
					if s.Status == client.StatusSending {
						fmt.Fprintln(cmd.ErrOrStderr(), "Sending...")
					}
				}),
			}
			if noPreCheck {
				ctrlOpts = append(ctrlOpts, client.WithPreCheck(nil))
			}
			ctrl := client.NewController(opts.client(), ctrlOpts...)
			defer ctrl.Close()

			for f, v := range map[contactform.Field]string{
				contactform.FieldName:    name,
				contactform.FieldEmail:   email,
				contactform.FieldMessage: message,
			} {
				if err := ctrl.SetField(f, v); err != nil {
					return err
				}
			}

			err := ctrl.Submit(cmd.Context())
			if res, ok := contactform.AsInvalid(err); ok {
				for _, msg := range res.Messages() {
					fmt.Fprintln(cmd.ErrOrStderr(), msg)
				}
				return errors.New("submission not sent")
			}

			state := ctrl.State()
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", state.Status, state.Message)
			if err != nil {
				var apiErr *client.APIError
				if errors.As(err, &apiErr) {
					for _, msg := range apiErr.Errors {
						fmt.Fprintln(cmd.ErrOrStderr(), msg)
					}
				}
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "your name")
	cmd.Flags().StringVar(&email, "email", "", "your email address")
	cmd.Flags().StringVar(&message, "message", "", "the message")
	cmd.Flags().BoolVar(&noPreCheck, "no-precheck", false, "send without local validation")
	return cmd
}

func newListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the most recent submissions",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := opts.client().List(cmd.Context())
			if err != nil {
				return err
			}
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Created", "Name", "Email", "Message"})
			table.SetAutoWrapText(false)
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetCenterSeparator("")
			table.SetColumnSeparator("")
			table.SetRowSeparator("")
			table.SetHeaderLine(false)
			table.SetBorder(false)
			table.SetTablePadding("\t")
			for _, s := range resp.Data {
				table.Append([]string{s.CreatedAt.Format(time.RFC3339), s.Name, s.Email, s.Message})
			}
			table.Render()
			fmt.Fprintf(cmd.OutOrStdout(), "%d submission(s)\n", resp.Total)
			return nil
		},
	}
}
