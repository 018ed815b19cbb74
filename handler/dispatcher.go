package handler

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const invalidCommand = "Invalid command. Please try again."

// usageTemplate replaces cobra's default, which advertises "--help" on
// subcommands that take every argument literally.
const usageTemplate = `Usage:{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]

Available Commands:{{range .Commands}}{{if .IsAvailableCommand}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

Use "help [command]" for more information about a command.{{else}}
  {{.UseLine}}{{end}}
`

type run func(ctx context.Context, args []string) (string, error)

// Dispatcher turns command lines into ContactHandler calls and writes the
// replies to out.
type Dispatcher struct {
	contacts *ContactHandler
	log      *otelzap.SugaredLogger
	out      io.Writer
	closed   bool
}

func NewDispatcher(contacts *ContactHandler, log *otelzap.SugaredLogger, out io.Writer) *Dispatcher {
	return &Dispatcher{
		contacts: contacts,
		log:      log,
		out:      out,
	}
}

// Dispatch runs one command line. It reports whether the line closed the
// session.
func (d *Dispatcher) Dispatch(ctx context.Context, line string) bool {
	return d.Execute(ctx, strings.Fields(line))
}

// Execute runs the command given as arguments, the first one being the
// command name. It reports whether the command closed the session.
func (d *Dispatcher) Execute(ctx context.Context, args []string) bool {
	if len(args) == 0 {
		respond(ctx, d.out, invalidCommand)
		return false
	}

	name := strings.ToLower(args[0])
	args = append([]string{name}, args[1:]...)

	id := uuid.NewString()
	ctx, span := otel.GetTracerProvider().Tracer("").Start(ctx, "command."+name)
	span.SetAttributes(
		attribute.String("command.id", id),
		attribute.Int("command.args", len(args)-1),
	)
	defer span.End()

	d.log.Ctx(ctx).Debugw("Dispatch", "command", name, "command_id", id)

	root := d.command()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		d.log.Ctx(ctx).Debugw("Dispatch", "command", name, "command_id", id, "error", err.Error())
		span.SetStatus(codes.Error, err.Error())
		respond(ctx, d.out, invalidCommand)
	}

	return d.closed
}

// command builds the command tree. A fresh tree per line keeps flag state
// from leaking between commands.
func (d *Dispatcher) command() *cobra.Command {
	root := &cobra.Command{
		Use:           "contacts",
		Short:         "Assistant bot keeping names, phone numbers and birthdays",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			respond(cmd.Context(), cmd.OutOrStdout(), invalidCommand)
			return nil
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetUsageTemplate(usageTemplate)
	root.SetOut(d.out)
	root.SetErr(d.out)

	root.AddCommand(
		d.subcommand("hello", "Greet the bot", d.contacts.Hello),
		d.subcommand("add <name> <phone>", "Add a contact or a phone to an existing contact", d.contacts.Add),
		d.subcommand("change <name> <old phone> <new phone>", "Replace a phone of a contact", d.contacts.Change),
		d.subcommand("delete <name>", "Delete a contact", d.contacts.Delete),
		d.subcommand("phone <name>", "Show the phones of a contact", d.contacts.Phone),
		d.subcommand("all", "Show all contacts", d.contacts.All),
		d.subcommand("add-birthday <name> <DD.MM.YYYY>", "Set the birthday of a contact", d.contacts.AddBirthday),
		d.subcommand("show-birthday <name>", "Show the birthday of a contact", d.contacts.ShowBirthday),
		d.subcommand("birthdays", "Show birthdays in the coming week", d.contacts.Birthdays),
		d.closeCommand(),
	)

	return root
}

func (d *Dispatcher) subcommand(use, short string, fn run) *cobra.Command {
	return &cobra.Command{
		Use:                   use,
		Short:                 short,
		DisableFlagParsing:    true,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			msg, err := fn(ctx, args)
			if err != nil {
				kind := errorKind(err)
				if kind == "internal" {
					d.log.Ctx(ctx).Errorw(cmd.Name(), "error", err.Error())
				} else {
					d.log.Ctx(ctx).Warnw(cmd.Name(), "kind", kind, "error", err.Error())
				}
				respondErr(ctx, cmd.OutOrStdout(), err)
				return nil
			}

			respond(ctx, cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

func (d *Dispatcher) closeCommand() *cobra.Command {
	return &cobra.Command{
		Use:                   "close",
		Aliases:               []string{"exit"},
		Short:                 "Save the book and quit",
		DisableFlagParsing:    true,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d.closed = true
			respond(cmd.Context(), cmd.OutOrStdout(), "Good bye!")
			return nil
		},
	}
}
