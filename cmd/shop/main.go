package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"storefront/internal/apiclient"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/domain"
	"storefront/internal/invoice"
	"storefront/internal/seed"
	"storefront/internal/store"
)

// addFlags collects repeated -add id[:qty] values.
type addFlags []string

func (a *addFlags) String() string     { return strings.Join(*a, ",") }
func (a *addFlags) Set(v string) error { *a = append(*a, v); return nil }

func main() {
	var (
		category  = flag.String("category", "", "Only show products in this category")
		sub       = flag.String("sub", "", "Only show products in this sub-category")
		search    = flag.String("search", "", "Free-text search over name, description, brand and category")
		sortKey   = flag.String("sort", "", "price-asc|price-desc|name-asc|name-desc|brand-asc|brand-desc|popularity")
		invoiceID = flag.String("invoice", "", "Render the invoice of this order id")
		out       = flag.String("out", "", "Invoice output file (default invoice-<id>.pdf)")
		email     = flag.String("email", "", "Sign in as this user before shopping")
		checkout  = flag.Bool("checkout", false, "Place an order for the items given with -add")
		address   = flag.String("address", "", "Shipping address as line1|city|postalCode|country")
		adds      addFlags
	)
	flag.Var(&adds, "add", "Add product id[:quantity] to the cart (repeatable)")
	flag.Parse()

	cfg := config.FromEnv()
	logger := log.New(os.Stderr, "[shop] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	key, err := catalog.ParseSortKey(*sortKey)
	if err != nil {
		logger.Fatalf("sort: %v", err)
	}

	client := apiclient.New(cfg.APIBaseURL, cfg.APITimeout, logger)
	st := store.New(client, seed.MustDefault(), logger)
	defer st.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.APITimeout)
	connected := st.Refresh(ctx)
	cancel()
	if !connected {
		logger.Printf("working offline with built-in data")
	}

	if *email != "" {
		if _, err := st.Dispatch(store.Login{Email: *email}); err != nil {
			logger.Fatalf("login: %v", err)
		}
	}

	if *invoiceID != "" {
		renderInvoice(logger, st.State(), *invoiceID, *out)
		return
	}

	if len(adds) > 0 {
		fillCart(logger, st, adds)
		if *checkout {
			placeOrder(logger, st, *address)
			return
		}
		printCart(st.State())
		return
	}

	for _, a := range []store.Action{
		store.SetCategoryFilter{Category: *category},
		store.SetSubCategoryFilter{SubCategory: *sub},
		store.SetSearch{Search: *search},
	} {
		if _, err := st.Dispatch(a); err != nil {
			logger.Fatalf("%s: %v", a.Kind(), err)
		}
	}
	state := st.State()
	printCatalog(state, catalog.Visible(state.Products, state.Filters, key))
}

func fillCart(logger *log.Logger, st *store.Store, adds []string) {
	for _, raw := range adds {
		id, qty := raw, 1
		if before, after, ok := strings.Cut(raw, ":"); ok {
			n, err := strconv.Atoi(after)
			if err != nil {
				logger.Fatalf("add %q: bad quantity", raw)
			}
			id, qty = before, n
		}
		p, ok := st.State().Product(id)
		if !ok {
			logger.Fatalf("add %q: no such product", id)
		}
		if _, err := st.Dispatch(store.AddToCart{Product: p, Quantity: qty}); err != nil {
			logger.Fatalf("add %q: %v", raw, err)
		}
	}
}

func placeOrder(logger *log.Logger, st *store.Store, rawAddress string) {
	parts := strings.Split(rawAddress, "|")
	for len(parts) < 4 {
		parts = append(parts, "")
	}
	order, err := store.Checkout(st.State(), store.CheckoutInput{
		ID:      uuid.NewString(),
		Address: domain.Address{Line1: parts[0], City: parts[1], PostalCode: parts[2], Country: parts[3]},
		Now:     time.Now(),
	})
	if err != nil {
		logger.Fatalf("checkout: %v", err)
	}
	if _, err := st.Dispatch(store.AddOrder{Order: order}); err != nil {
		logger.Fatalf("place order: %v", err)
	}
	if _, err := st.Dispatch(store.ClearCart{}); err != nil {
		logger.Fatalf("clear cart: %v", err)
	}
	fmt.Printf("Order %s placed: %s %s (%s)\n", order.ID, order.Total.StringFixed(2), st.State().Settings.Currency, order.Status)
}

func renderInvoice(logger *log.Logger, state store.State, id, out string) {
	order, ok := state.Order(id)
	if !ok {
		logger.Fatalf("invoice: order %q not found", id)
	}
	if out == "" {
		out = invoice.Filename(order)
	}
	f, err := os.Create(out)
	if err != nil {
		logger.Fatalf("invoice: %v", err)
	}
	if err := invoice.Render(f, order, state.Settings); err != nil {
		_ = f.Close()
		logger.Fatalf("invoice: %v", err)
	}
	if err := f.Close(); err != nil {
		logger.Fatalf("invoice: %v", err)
	}
	fmt.Printf("Wrote %s\n", out)
}

func printCatalog(state store.State, products []domain.Product) {
	fmt.Printf("%s (%d of %d products)\n", state.Settings.StoreName, len(products), len(state.Products))
	if subs := catalog.SubCategoriesOf(state.Categories, state.Filters.Category); len(subs) > 0 {
		fmt.Printf("Sub-categories: %s\n", strings.Join(subs, ", "))
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tBRAND\tCATEGORY\tPRICE\tSTOCK\t")
	for _, p := range products {
		badges := ""
		if p.IsNew {
			badges += " [new]"
		}
		if p.Discount > 0 {
			badges += fmt.Sprintf(" [-%d%%]", p.Discount)
		}
		fmt.Fprintf(w, "%s\t%s%s\t%s\t%s/%s\t%s\t%d\t\n",
			p.ID, p.Name, badges, p.Brand, p.Category, p.SubCategory, p.Price.StringFixed(2), p.Stock)
	}
	_ = w.Flush()
}

func printCart(state store.State) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tOPTIONS\tQTY\tTOTAL\t")
	for _, it := range state.Cart {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t\n", it.Name, it.SelectionLabel(), it.Quantity, it.LineTotal().StringFixed(2))
	}
	fmt.Fprintf(w, "\t\t%d\t%s\t\n", state.CartCount(), state.CartTotal().StringFixed(2))
	_ = w.Flush()
}
