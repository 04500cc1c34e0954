package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"exoticworld/controller"
	"exoticworld/models"
	"exoticworld/state"

	"github.com/shopspring/decimal"
)

func price(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func statusLine(out io.Writer, status state.Status, message string) error {
	var err error
	switch status {
	case state.StatusLoading:
		_, err = fmt.Fprintln(out, "loading...")
	case state.StatusError:
		_, err = fmt.Fprintln(out, "error:", message)
	default:
		_, err = fmt.Fprintln(out, "nothing loaded")
	}
	return err
}

func renderProducts(out io.Writer, snap controller.Snapshot) error {
	ui := snap.VisibleProducts()
	products, ok := ui.Get()
	if !ok {
		return statusLine(out, ui.Status, ui.Message)
	}
	if len(products) == 0 {
		_, err := fmt.Fprintln(out, "no products")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", p.ID, p.Name, price(p.Price))
	}
	return tw.Flush()
}

func renderProduct(out io.Writer, snap controller.Snapshot) error {
	p, ok := snap.Product.Get()
	if !ok {
		return statusLine(out, snap.Product.Status, snap.Product.Message)
	}
	_, err := fmt.Fprintf(out, "#%d %s\n%s\n%s\n", p.ID, p.Name, p.Description, price(p.Price))
	return err
}

func renderCart(out io.Writer, snap controller.Snapshot) error {
	items, ok := snap.Cart.Get()
	if !ok {
		return statusLine(out, snap.Cart.Status, snap.Cart.Message)
	}
	if _, err := fmt.Fprintf(out, "cart of %s\n", snap.UserID); err != nil {
		return err
	}
	if len(items) == 0 {
		_, err := fmt.Fprintln(out, "cart is empty")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tQTY\tPRICE\tSUBTOTAL")
	for _, item := range items {
		writeLine(tw, item)
	}
	fmt.Fprintf(tw, "\t\t\tTOTAL\t%s\n", price(snap.Total))
	return tw.Flush()
}

func writeLine(w io.Writer, item models.CartItem) {
	fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n",
		item.Product.ID, item.Product.Name, item.Quantity, price(item.Product.Price), price(item.Subtotal()))
}

func renderUser(out io.Writer, snap controller.Snapshot) error {
	_, err := fmt.Fprintln(out, "user:", snap.UserID)
	return err
}
