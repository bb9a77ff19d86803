package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"orderdesk/internal/api"
	"orderdesk/internal/auth"
	"orderdesk/internal/config"
	"orderdesk/internal/edit"
	"orderdesk/internal/geo"
	"orderdesk/internal/list"
	"orderdesk/internal/model"
	"orderdesk/internal/query"
	"orderdesk/internal/save"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting orderdesk console")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Process-wide session: credential + theme
	session := auth.NewSession(cfg.Auth.Token)

	// API clients
	apiClient := api.NewClient(cfg.API, session, logger)
	geoClient := geo.NewClient(cfg.Geo, logger)

	// Order list controller
	controller := list.NewController(ctx, apiClient, cfg.List.PageSize, cfg.List.AllowedPageSizes, cfg.List.SearchDebounce, logger)
	defer controller.Close()

	ui := &console{
		cfg:     cfg,
		session: session,
		api:     apiClient,
		geo:     geoClient,
		list:    controller,
		logger:  logger,
		out:     os.Stdout,
	}
	ui.reconciler = save.NewReconciler(apiClient, controller, ui, logger)
	controller.OnChange(ui.renderList)

	if session.HasCredential() {
		controller.Refresh()
	} else {
		fmt.Fprintln(ui.out, "No credential configured; use: login <email> <password>")
	}

	return ui.loop(ctx)
}

// console is the interactive command loop plus its rendering state. It
// implements save.Notifier so save outcomes print like any other output.
type console struct {
	cfg        *config.Config
	session    *auth.Session
	api        *api.Client
	geo        *geo.Client
	list       *list.Controller
	reconciler *save.Reconciler
	logger     zerolog.Logger
	out        *os.File

	editing *edit.Session
}

// Success implements save.Notifier.
func (c *console) Success(message string) {
	fmt.Fprintln(c.out, message)
}

// Error implements save.Notifier.
func (c *console) Error(message string) {
	fmt.Fprintln(c.out, message)
}

func (c *console) loop(ctx context.Context) error {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Fprintln(c.out, `Type "help" for commands.`)

	for {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "quit", "exit":
			return nil
		case "help":
			c.printHelp()
		case "login":
			c.cmdLogin(ctx, args)
		case "logout":
			c.session.Clear()
			fmt.Fprintln(c.out, "Credential cleared.")
		case "theme":
			fmt.Fprintf(c.out, "Theme: %s\n", c.session.ToggleTheme())
		case "list", "refresh":
			c.list.Refresh()
		case "search":
			c.list.Search(strings.Join(args, " "))
		case "page":
			c.cmdInt(args, c.list.SetPage)
		case "size":
			c.cmdInt(args, c.list.SetPageSize)
		case "sort":
			c.cmdSort(args)
		case "open":
			c.cmdOpen(args)
		case "items":
			c.renderDraft()
		case "qty":
			c.cmdQuantity(args)
		case "rm":
			c.cmdRemove(args)
		case "ship":
			c.cmdShipping(args)
		case "country":
			c.cmdCountry(args)
		case "city":
			c.cmdDraft(args, func(s *edit.Session, v string) error { return s.SetCity(v) })
		case "address":
			c.cmdDraft(args, func(s *edit.Session, v string) error { return s.SetAddressLine(v) })
		case "status":
			c.cmdStatus(args)
		case "countries":
			c.cmdCountries(ctx)
		case "cities":
			c.cmdCities(ctx)
		case "save":
			c.cmdSave(ctx)
		case "cancel":
			c.cmdCancel()
		default:
			fmt.Fprintf(c.out, "Unknown command %q; type \"help\".\n", cmd)
		}
	}
}

func (c *console) printHelp() {
	fmt.Fprint(c.out, `Commands:
  login <email> <password>   authenticate and store the credential
  logout                     clear the credential
  list | refresh             fetch the order list
  search <term>              debounced search
  page <n> | size <n>        pagination (sizes: 5, 10, 25)
  sort <column>              customerName | orderDate | finalAmount
  open <order-id>            start editing an order
  items                      show the current draft
  qty <product-id> <n>       set item quantity
  rm <product-id>            remove an item
  ship <amount|none>         set shipping cost
  country <name>             set country (resets city)
  city <name>                set city
  address <line>             set street address
  status <value>             Pending | Processing | Completed | Cancelled
  countries | cities         lookup shipping options
  save | cancel              finish the edit session
  theme                      toggle light/dark mode
  quit
`)
}

func (c *console) cmdLogin(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(c.out, "Usage: login <email> <password>")
		return
	}

	token, err := c.api.Login(ctx, args[0], args[1])
	if err != nil {
		fmt.Fprintf(c.out, "Login failed: %v\n", err)
		return
	}

	c.session.SetToken(token)
	fmt.Fprintln(c.out, "Logged in.")
	c.list.Refresh()
}

func (c *console) cmdInt(args []string, apply func(int)) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: <command> <number>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "Not a number: %s\n", args[0])
		return
	}
	apply(n)
}

func (c *console) cmdSort(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: sort <customerName|orderDate|finalAmount>")
		return
	}

	switch query.SortField(args[0]) {
	case query.SortByCustomerName, query.SortByOrderDate, query.SortByFinalAmount:
		c.list.ToggleSort(query.SortField(args[0]))
	default:
		fmt.Fprintf(c.out, "Unknown sort column: %s\n", args[0])
	}
}

func (c *console) cmdOpen(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: open <order-id>")
		return
	}

	order, ok := c.list.Find(args[0])
	if !ok {
		fmt.Fprintln(c.out, model.ErrOrderNotFound.Message)
		return
	}

	c.editing = edit.Open(order, c.cfg.Policy, c.logger)
	if !c.editing.Editable() {
		fmt.Fprintln(c.out, "Order is not Pending; items and address are read-only.")
	}
	c.renderDraft()
}

func (c *console) cmdQuantity(args []string) {
	session, ok := c.draft()
	if !ok {
		return
	}
	if len(args) != 2 {
		fmt.Fprintln(c.out, "Usage: qty <product-id> <quantity>")
		return
	}

	qty, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintf(c.out, "Not a number: %s\n", args[1])
		return
	}

	if err := session.SetQuantity(args[0], qty); err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	c.renderDraft()
}

func (c *console) cmdRemove(args []string) {
	session, ok := c.draft()
	if !ok {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: rm <product-id>")
		return
	}

	if err := session.RemoveItem(args[0]); err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	c.renderDraft()
}

func (c *console) cmdShipping(args []string) {
	session, ok := c.draft()
	if !ok {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: ship <amount|none>")
		return
	}

	var cost *decimal.Decimal
	if args[0] != "none" {
		parsed, err := decimal.NewFromString(args[0])
		if err != nil {
			fmt.Fprintf(c.out, "Not an amount: %s\n", args[0])
			return
		}
		cost = &parsed
	}

	if err := session.SetShippingCost(cost); err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	c.renderDraft()
}

func (c *console) cmdCountry(args []string) {
	session, ok := c.draft()
	if !ok {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(c.out, "Usage: country <name>")
		return
	}

	if err := session.SetCountry(strings.Join(args, " ")); err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	fmt.Fprintln(c.out, "Country set; city cleared.")
}

func (c *console) cmdDraft(args []string, apply func(*edit.Session, string) error) {
	session, ok := c.draft()
	if !ok {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(c.out, "Missing value.")
		return
	}

	if err := apply(session, strings.Join(args, " ")); err != nil {
		fmt.Fprintln(c.out, err)
	}
}

func (c *console) cmdStatus(args []string) {
	session, ok := c.draft()
	if !ok {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: status <Pending|Processing|Completed|Cancelled>")
		return
	}

	status, err := model.ParseStatus(args[0])
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}

	if err := session.SetStatus(status); err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	c.renderDraft()
}

func (c *console) cmdCountries(ctx context.Context) {
	countries, err := c.geo.Countries(ctx)
	if err != nil {
		fmt.Fprintf(c.out, "Country lookup unavailable (%v); enter a country manually.\n", err)
		return
	}
	fmt.Fprintln(c.out, strings.Join(countries, ", "))
}

func (c *console) cmdCities(ctx context.Context) {
	session, ok := c.draft()
	if !ok {
		return
	}
	if session.Country() == "" {
		fmt.Fprintln(c.out, "Set a country first.")
		return
	}

	cities, err := c.geo.Cities(ctx, session.Country())
	if err != nil {
		fmt.Fprintf(c.out, "City lookup unavailable (%v); enter a city manually.\n", err)
		return
	}
	fmt.Fprintln(c.out, strings.Join(cities, ", "))
}

func (c *console) cmdSave(ctx context.Context) {
	session, ok := c.draft()
	if !ok {
		return
	}

	if err := c.reconciler.Save(ctx, session); err != nil {
		// Session stays open so the user can retry or cancel.
		return
	}
	c.editing = nil
}

func (c *console) cmdCancel() {
	if c.editing == nil {
		fmt.Fprintln(c.out, "No edit session open.")
		return
	}
	c.editing.Close()
	c.editing = nil
	fmt.Fprintln(c.out, "Edit cancelled; no changes saved.")
}

func (c *console) draft() (*edit.Session, bool) {
	if c.editing == nil {
		fmt.Fprintln(c.out, "No edit session open; use: open <order-id>")
		return nil, false
	}
	return c.editing, true
}

// renderList prints the current list snapshot. It runs on whatever
// goroutine committed the state change.
func (c *console) renderList() {
	snap := c.list.Snapshot()

	if snap.Loading {
		return
	}
	if snap.ErrorMessage != "" {
		fmt.Fprintln(c.out, snap.ErrorMessage)
		return
	}
	if len(snap.Orders) == 0 {
		fmt.Fprintln(c.out, "No orders match the current search.")
		return
	}

	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCUSTOMER\tDATE\tTOTAL\tSTATUS")
	for _, order := range snap.Orders {
		fmt.Fprintf(w, "%s\t%s\t%s\t$%s\t%s\n",
			order.ID, order.CustomerName, order.Date, order.Total.StringFixed(2), order.Status)
	}
	w.Flush()
	fmt.Fprintf(c.out, "Page %d (size %d) of %d orders, sorted by %s %s\n",
		snap.Page, snap.PageSize, snap.TotalElements, snap.SortField, snap.SortDirection)
}

// renderDraft prints the current edit session with derived totals.
func (c *console) renderDraft() {
	session, ok := c.draft()
	if !ok {
		return
	}

	order := session.Order()
	fmt.Fprintf(c.out, "Order %s for %s (%s)\n", order.ID, order.CustomerName, order.Date)

	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tNAME\tQTY\tUNIT\tSUBTOTAL")
	for _, item := range session.Items() {
		fmt.Fprintf(w, "%s\t%s\t%d\t$%s\t$%s\n",
			item.ProductID, item.ProductName, item.Quantity,
			item.UnitPrice.StringFixed(2), model.LineSubtotal(item).StringFixed(2))
	}
	w.Flush()

	shipping := "-"
	if cost := session.ShippingCost(); cost != nil {
		shipping = "$" + cost.StringFixed(2)
	}
	fmt.Fprintf(c.out, "Subtotal: $%s  Shipping: %s  Total: $%s\n",
		session.Subtotal().StringFixed(2), shipping, session.Total().StringFixed(2))
	fmt.Fprintf(c.out, "Status: %s  Address: %s\n", session.Status(), session.ShippingAddress())
}
