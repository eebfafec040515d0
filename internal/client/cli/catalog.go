package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/beautystore/internal/client/models"
)

func (a *App) favMark(productID string) string {
	if a.favorites.Status(productID).Value {
		return "*"
	}
	return " "
}

func (a *App) printProductLine(p models.Product) {
	fmt.Fprintf(a.out, "%s %-36s  %-28s %8s\n", a.favMark(p.ID), p.ID, p.Name, p.Price())
}

// Products lists the catalog, optionally narrowed to one category. Favorites
// are marked with '*'.
func (a *App) Products(ctx context.Context, args []string) error {
	category := strings.Join(args, " ")
	products, err := a.catalog.List(ctx, category)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	if len(products) == 0 {
		fmt.Fprintln(a.out, "No products.")
		return nil
	}
	for _, p := range products {
		a.favorites.Track(p, false)
		a.printProductLine(p)
	}
	return nil
}

func (a *App) Product(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: product <id>")
		return nil
	}
	p, err := a.catalog.Get(ctx, args[0])
	if err != nil {
		a.report(ctx, err)
		return err
	}
	a.favorites.Track(*p, false)

	fmt.Fprintf(a.out, "%s\n  price:    %s\n", p.Name, p.Price())
	if p.Category != "" {
		fmt.Fprintf(a.out, "  category: %s\n", p.Category)
	}
	if p.Description != "" {
		fmt.Fprintf(a.out, "  %s\n", p.Description)
	}
	fmt.Fprintf(a.out, "  favorite: %t\n", a.favorites.Status(p.ID).Value)
	return nil
}

// Image downloads the product picture to the given path (default <id>.jpg).
func (a *App) Image(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: image <id> [path]")
		return nil
	}
	path := args[0] + ".jpg"
	if len(args) > 1 {
		path = args[1]
	}
	n, err := a.catalog.DownloadImage(ctx, args[0], path)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	fmt.Fprintf(a.out, "Saved %d bytes to %s\n", n, path)
	return nil
}
