package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/beautystore/internal/client/client"
	"github.com/dmitrijs2005/beautystore/internal/client/favorites"
	"github.com/dmitrijs2005/beautystore/internal/common"
)

// report turns a command failure into a user-facing notice. Authentication
// failures end the session; nothing here is fatal.
func (a *App) report(ctx context.Context, err error) {
	if err == nil {
		return
	}
	a.logger.Debug(ctx, "command failed", "error", err)

	switch {
	case a.sessions.Expire(ctx, err):
		// the expired event prints the notice before the next prompt
	case errors.Is(err, common.ErrValidation):
		fmt.Fprintln(a.out, validationMessage(err))
	case errors.Is(err, favorites.ErrTogglePending):
		fmt.Fprintln(a.out, "Still saving your previous change to this product, please wait.")
	case errors.Is(err, common.ErrorNotFound):
		fmt.Fprintln(a.out, "Not found.")
	case errors.Is(err, client.ErrForbidden):
		fmt.Fprintln(a.out, "You are not allowed to do that.")
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintln(a.out, "The store is unreachable right now. Please try again.")
	case errors.Is(err, client.ErrRemoteCall):
		fmt.Fprintln(a.out, "Something went wrong. Please try again.")
	default:
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
}

func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, common.ErrValidation.Error()+": "); i >= 0 {
		msg = msg[i+len(common.ErrValidation.Error())+2:]
	}
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}
