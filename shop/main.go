package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/rogerio-castellano/sweet-shop/internal/catalog"
	"github.com/rogerio-castellano/sweet-shop/internal/config"
	"github.com/rogerio-castellano/sweet-shop/internal/models"
	"github.com/rogerio-castellano/sweet-shop/internal/view"
)

var (
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed, color.Bold)
	faint = color.New(color.Faint)
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options] [args]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Sweet shop catalog client. Settings come from SHOP_API_URL, SHOP_TOKEN and SHOP_TIMEOUT.\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  login <username> <password>       Print a token for SHOP_TOKEN\n")
	fmt.Fprintf(os.Stderr, "  register <username> <password>    Create an account and print its token\n")
	fmt.Fprintf(os.Stderr, "  list [-name -category -min -max]  Show the sweets matching the filter\n")
	fmt.Fprintf(os.Stderr, "  categories                        Show the known categories\n")
	fmt.Fprintf(os.Stderr, "  buy <id> <quantity>               Purchase units of a sweet\n")
	fmt.Fprintf(os.Stderr, "  add -name -category -price -quantity\n")
	fmt.Fprintf(os.Stderr, "  edit [-name -category -price -quantity] <id>\n")
	fmt.Fprintf(os.Stderr, "  delete [-yes] <id>\n")
	fmt.Fprintf(os.Stderr, "  restock <id> <quantity>\n")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.LoadClient()
	if err != nil {
		red.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	client := catalog.NewHTTPClient(cfg.APIURL, catalog.WithToken(cfg.Token), catalog.WithTimeout(cfg.Timeout))

	ctx := context.Background()
	cmd, args := os.Args[1], os.Args[2:]

	switch cmd {
	case "login", "register":
		err = runAuth(ctx, client, cmd, args)
	case "list":
		err = runList(ctx, client, args)
	case "categories":
		err = runCategories(ctx, client)
	case "buy":
		err = runBuy(ctx, client, args)
	case "add":
		err = runAdd(ctx, client, args)
	case "edit":
		err = runEdit(ctx, client, args)
	case "delete":
		err = runDelete(ctx, client, args)
	case "restock":
		err = runRestock(ctx, client, args)
	case "help", "-h", "--help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		os.Exit(1)
	}
}

func notifier() view.Notifier {
	return view.NotifierFuncs{
		OnSuccess: func(msg string) { green.Printf("✅ %s\n", msg) },
		OnFailure: func(msg string) { red.Fprintf(os.Stderr, "❌ %s\n", msg) },
	}
}

func prompt(in io.Reader) view.ConfirmFunc {
	return func(question string) bool {
		fmt.Printf("%s [y/N] ", question)
		line, _ := bufio.NewReader(in).ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}
}

func runAuth(ctx context.Context, client *catalog.HTTPClient, cmd string, args []string) error {
	if len(args) != 2 {
		return usageError("%s needs <username> <password>", cmd)
	}
	var (
		token string
		err   error
	)
	if cmd == "login" {
		token, err = client.Login(ctx, args[0], args[1])
	} else {
		token, err = client.Register(ctx, args[0], args[1])
	}
	if err != nil {
		red.Fprintf(os.Stderr, "❌ %s\n", catalog.Reason(err, "Authentication failed"))
		return err
	}
	fmt.Println(token)
	return nil
}

func runList(ctx context.Context, client catalog.Client, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	name := fs.String("name", "", "Name contains (case-insensitive)")
	category := fs.String("category", "", "Exact category")
	minPrice := fs.String("min", "", "Minimum price")
	maxPrice := fs.String("max", "", "Maximum price")
	if err := fs.Parse(args); err != nil {
		return err
	}

	d := view.NewDashboard(client, notifier())
	if err := loadOrReport(ctx, d.Load, d.LoadError); err != nil {
		return err
	}
	d.SetName(*name)
	d.SetCategory(*category)
	d.SetPriceRange(*minPrice, *maxPrice)

	printSweets(d.Visible())
	return nil
}

func runCategories(ctx context.Context, client catalog.Client) error {
	d := view.NewDashboard(client, notifier())
	if err := loadOrReport(ctx, d.Load, d.LoadError); err != nil {
		return err
	}
	for _, c := range d.Categories() {
		fmt.Println(c)
	}
	return nil
}

func runBuy(ctx context.Context, client catalog.Client, args []string) error {
	id, qty, err := idAndQuantity("buy", args)
	if err != nil {
		return err
	}

	d := view.NewDashboard(client, notifier())
	if err := loadOrReport(ctx, d.Load, d.LoadError); err != nil {
		return err
	}
	d.SetPendingQuantity(id, qty)
	if err := d.Purchase(ctx, id); err != nil {
		return err
	}
	printSweets(d.Visible())
	return nil
}

func runAdd(ctx context.Context, client catalog.Client, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	var draft view.Draft
	fs.StringVar(&draft.Name, "name", "", "Sweet name")
	fs.StringVar(&draft.Category, "category", "", "Category")
	fs.StringVar(&draft.Price, "price", "", "Unit price")
	fs.StringVar(&draft.Quantity, "quantity", "0", "Units in stock")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a := view.NewAdmin(client, notifier(), nil)
	if err := loadOrReport(ctx, a.Load, a.LoadError); err != nil {
		return err
	}
	a.OpenCreate()
	if err := a.SetDraft(draft); err != nil {
		return err
	}
	if err := a.Submit(ctx); err != nil {
		return err
	}
	printSweets(a.Items())
	return nil
}

func runEdit(ctx context.Context, client catalog.Client, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	name := fs.String("name", "", "New name")
	category := fs.String("category", "", "New category")
	price := fs.String("price", "", "New unit price")
	quantity := fs.String("quantity", "", "New units in stock")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageError("edit needs exactly one <id>")
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		return usageError("invalid id %q", fs.Arg(0))
	}

	a := view.NewAdmin(client, notifier(), nil)
	if err := loadOrReport(ctx, a.Load, a.LoadError); err != nil {
		return err
	}
	if err := a.OpenEdit(id); err != nil {
		red.Fprintf(os.Stderr, "❌ Sweet %d not found\n", id)
		return err
	}

	draft, _ := a.Draft()
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			draft.Name = *name
		case "category":
			draft.Category = *category
		case "price":
			draft.Price = *price
		case "quantity":
			draft.Quantity = *quantity
		}
	})
	if err := a.SetDraft(draft); err != nil {
		return err
	}
	if err := a.Submit(ctx); err != nil {
		return err
	}
	printSweets(a.Items())
	return nil
}

func runDelete(ctx context.Context, client catalog.Client, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	yes := fs.Bool("yes", false, "Skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageError("delete needs exactly one <id>")
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		return usageError("invalid id %q", fs.Arg(0))
	}

	confirm := prompt(os.Stdin)
	if *yes {
		confirm = func(string) bool { return true }
	}

	a := view.NewAdmin(client, notifier(), confirm)
	if err := loadOrReport(ctx, a.Load, a.LoadError); err != nil {
		return err
	}
	err = a.Delete(ctx, id)
	if errors.Is(err, view.ErrDeleteCancelled) {
		fmt.Println("Cancelled.")
		return nil
	}
	if err != nil {
		return err
	}
	printSweets(a.Items())
	return nil
}

func runRestock(ctx context.Context, client catalog.Client, args []string) error {
	id, qty, err := idAndQuantity("restock", args)
	if err != nil {
		return err
	}

	a := view.NewAdmin(client, notifier(), nil)
	if err := loadOrReport(ctx, a.Load, a.LoadError); err != nil {
		return err
	}
	if err := a.Restock(ctx, id, qty); err != nil {
		return err
	}
	printSweets(a.Items())
	return nil
}

// loadOrReport prints the inline load error when the first fetch fails.
func loadOrReport(ctx context.Context, load func(context.Context) error, loadErr func() string) error {
	if err := load(ctx); err != nil {
		red.Fprintf(os.Stderr, "❌ %s: %v\n", loadErr(), err)
		return err
	}
	return nil
}

func idAndQuantity(cmd string, args []string) (int64, string, error) {
	if len(args) != 2 {
		return 0, "", usageError("%s needs <id> <quantity>", cmd)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, "", usageError("invalid id %q", args[0])
	}
	return id, args[1], nil
}

func usageError(format string, a ...any) error {
	err := fmt.Errorf(format, a...)
	fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
	usage()
	return err
}

func printSweets(sweets []models.Sweet) {
	if len(sweets) == 0 {
		faint.Println("No sweets found.")
		return
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
	for _, s := range sweets {
		stock := strconv.Itoa(s.Quantity)
		if s.Quantity == 0 {
			stock = "out of stock"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t$%s\t%s\n", s.ID, s.Name, s.Category, s.DisplayPrice(), stock)
	}
	tw.Flush()
}
