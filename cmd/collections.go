package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/tabernacle/internal/shared"
	"github.com/desertthunder/tabernacle/internal/store"
)

// CollectionInfo describes one stored collection for `collections list`.
type CollectionInfo struct {
	Key    string `json:"key"`
	Stored bool   `json:"stored"` // false when the built-in default applies
	Bytes  int    `json:"bytes"`
}

// CollectionsList shows every collection and whether it has been written.
func (r *Runner) CollectionsList(ctx context.Context, cmd *cli.Command) error {
	state, err := r.openState(ctx)
	if err != nil {
		return err
	}

	infos := make([]CollectionInfo, 0, len(store.Keys))
	for _, key := range store.Keys {
		info := CollectionInfo{Key: key}
		raw, err := state.Backend().Get(ctx, key)
		switch {
		case err == nil:
			info.Stored = true
			info.Bytes = len(raw)
		case !errors.Is(err, shared.ErrCollectionNotFound):
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		infos = append(infos, info)
	}

	if cmd.Bool("json") {
		return r.writeJSON(infos, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Collections")
	for _, info := range infos {
		source := "défaut"
		if info.Stored {
			source = fmt.Sprintf("%d octets", info.Bytes)
		}
		r.writePlain("%-26s %s\n", info.Key, source)
	}
	return nil
}

// CollectionsGet prints the current value of a collection, default included.
func (r *Runner) CollectionsGet(ctx context.Context, cmd *cli.Command) error {
	key := cmd.StringArg("key")
	if key == "" {
		return fmt.Errorf("%w: collection key", shared.ErrMissingArgument)
	}
	state, err := r.openState(ctx)
	if err != nil {
		return err
	}
	raw, err := state.Raw(key)
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", raw)
}

// CollectionsSet replaces a collection with a JSON document from the argument or --file.
func (r *Runner) CollectionsSet(ctx context.Context, cmd *cli.Command) error {
	key := cmd.StringArg("key")
	if key == "" {
		return fmt.Errorf("%w: collection key", shared.ErrMissingArgument)
	}

	raw := cmd.StringArg("value")
	if path := cmd.String("file"); path != "" {
		if raw != "" {
			return fmt.Errorf("%w: cannot specify both a value and --file", shared.ErrInvalidArgument)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		raw = string(data)
	}
	if raw == "" {
		return fmt.Errorf("%w: either a value or --file must be provided", shared.ErrMissingArgument)
	}

	state, err := r.openState(ctx)
	if err != nil {
		return err
	}
	if err := state.SetRaw(ctx, key, raw); err != nil {
		return err
	}

	r.logger.Info("collection updated", "key", key)
	return r.writePlain("✓ %s enregistré\n", key)
}

// CollectionsReset deletes the stored document so the default applies again.
func (r *Runner) CollectionsReset(ctx context.Context, cmd *cli.Command) error {
	key := cmd.StringArg("key")
	if key == "" {
		return fmt.Errorf("%w: collection key", shared.ErrMissingArgument)
	}
	state, err := r.openState(ctx)
	if err != nil {
		return err
	}
	if err := state.Reset(ctx, key); err != nil {
		return err
	}

	r.logger.Info("collection reset", "key", key)
	return r.writePlain("✓ %s réinitialisé\n", key)
}
