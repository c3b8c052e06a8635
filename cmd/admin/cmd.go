// cmd/admin/cmd.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"syscall"
	"text/tabwriter"

	"golang.org/x/term"

	"course_portal/internal/model"
	"course_portal/internal/service"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	svc service.AdminService
	out io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  grant -email EMAIL -courses web,mobile - grant course access and mark the account as paid")
	fmt.Fprintln(cli.out, "  promote -email EMAIL - give admin rights to an existing account")
	fmt.Fprintln(cli.out, "  list [-status pending|paid|rejected] [-q QUERY] - list learner accounts")
	fmt.Fprintln(cli.out, "  stats - show account counts and revenue")
	fmt.Fprintln(cli.out, "  adduser -name NAME -email EMAIL [-admin] - create an account, the password will be prompted next")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	grantCmd := flag.NewFlagSet("grant", flag.ContinueOnError)
	grantEmail := grantCmd.String("email", "", "The learner's email.")
	grantCourses := grantCmd.String("courses", "", "Comma separated course IDs (web, mobile, bundle, image-editing).")

	promoteCmd := flag.NewFlagSet("promote", flag.ContinueOnError)
	promoteEmail := promoteCmd.String("email", "", "The account's email.")

	listCmd := flag.NewFlagSet("list", flag.ContinueOnError)
	listStatus := listCmd.String("status", "", "Filter by payment status.")
	listQuery := listCmd.String("q", "", "Filter by name, email or phone.")

	addUserCmd := flag.NewFlagSet("adduser", flag.ContinueOnError)
	addUserName := addUserCmd.String("name", "", "Display name.")
	addUserEmail := addUserCmd.String("email", "", "Login email.")
	addUserAdmin := addUserCmd.Bool("admin", false, "Create the account with admin rights.")

	for _, fs := range []*flag.FlagSet{grantCmd, promoteCmd, listCmd, addUserCmd} {
		fs.SetOutput(cli.out)
	}

	ctx := context.Background()

	switch args[1] {
	case "grant":
		if err := grantCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		courses := splitCourses(*grantCourses)
		if *grantEmail == "" || len(courses) == 0 {
			grantCmd.Usage()
			return errHelp
		}
		return cli.grant(ctx, *grantEmail, courses)
	case "promote":
		if err := promoteCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *promoteEmail == "" {
			promoteCmd.Usage()
			return errHelp
		}
		return cli.promote(ctx, *promoteEmail)
	case "list":
		if err := listCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.list(ctx, model.AccountFilter{
			Status: model.PaymentStatus(strings.ToLower(*listStatus)),
			Query:  *listQuery,
		})
	case "stats":
		return cli.stats(ctx)
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *addUserName == "" || *addUserEmail == "" {
			addUserCmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(ctx, *addUserName, *addUserEmail, string(pwd), *addUserAdmin)
	default:
		cli.printUsage()
		return errHelp
	}
}

func splitCourses(raw string) []string {
	var out []string
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func (cli *commandLine) grant(ctx context.Context, email string, courses []string) error {
	account, err := cli.svc.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	updated, err := cli.svc.GrantAccess(ctx, account.AccountID, courses)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "granted %s: access=%v status=%s\n", updated.Email, updated.CourseAccess, updated.PaymentStatus)
	return nil
}

func (cli *commandLine) promote(ctx context.Context, email string) error {
	account, err := cli.svc.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := cli.svc.Promote(ctx, account.AccountID); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s is now an admin\n", account.Email)
	return nil
}

func (cli *commandLine) list(ctx context.Context, filter model.AccountFilter) error {
	accounts, err := cli.svc.ListAccounts(ctx, filter)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "EMAIL\tNAME\tSTATUS\tACCESS\tCONTACTED")
	for _, a := range accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%t\n", a.Email, a.Name, a.PaymentStatus, a.CourseAccess, a.WhatsappContacted)
	}
	return w.Flush()
}

func (cli *commandLine) stats(ctx context.Context) error {
	s, err := cli.svc.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "total=%d pending=%d paid=%d revenue=%d %s\n", s.Total, s.Pending, s.Paid, s.Revenue, s.Currency)
	return nil
}

func (cli *commandLine) addUser(ctx context.Context, name, email, password string, isAdmin bool) error {
	account, err := cli.svc.CreateAccount(ctx, name, email, password, isAdmin)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "created %s (%s) admin=%t\n", account.Email, account.AccountID, account.IsAdmin)
	return nil
}
