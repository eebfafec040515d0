package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/beautystore/internal/client/favorites"
)

// Fav toggles the favorite flag of one product. The new value shows at once;
// a failed save restores the previous one.
func (a *App) Fav(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: fav <id>")
		return nil
	}
	id := args[0]

	value, err := a.favorites.Toggle(ctx, a.userID(), id)
	if err != nil {
		a.report(ctx, err)
		if !errors.Is(err, favorites.ErrTogglePending) && a.isLoggedIn() {
			fmt.Fprintf(a.out, "%s favorite: %t (unchanged)\n", id, value)
		}
		return err
	}

	if value {
		fmt.Fprintf(a.out, "Added %s to favorites\n", id)
	} else {
		fmt.Fprintf(a.out, "Removed %s from favorites\n", id)
	}
	return nil
}

// Favorites is the favorites screen. Entering it drops whatever the previous
// view had in flight and reloads the list from the backend.
func (a *App) Favorites(ctx context.Context) error {
	a.favorites.Detach()
	if err := a.favorites.Refresh(ctx, a.userID()); err != nil {
		if errors.Is(err, favorites.ErrStale) {
			return nil
		}
		a.report(ctx, err)
		return err
	}

	list := a.favorites.Favorites()
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No favorites yet.")
		return nil
	}
	for _, p := range list {
		a.printProductLine(p)
	}
	return nil
}

func (a *App) refreshFavorites(ctx context.Context) {
	uid := a.userID()
	if uid == "" {
		return
	}
	if err := a.favorites.Refresh(ctx, uid); err != nil && !errors.Is(err, favorites.ErrStale) {
		a.report(ctx, err)
	}
}
