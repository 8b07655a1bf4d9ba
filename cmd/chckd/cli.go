package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/nhle/chckd/internal/exchange"
	"github.com/nhle/chckd/internal/model"
	"github.com/nhle/chckd/internal/seed"
	"github.com/nhle/chckd/internal/store"
	"github.com/nhle/chckd/internal/theme"
)

var errUsage = errors.New("usage error")

// cli runs one subcommand against an open store.
type cli struct {
	store   *store.Store
	cfg     *model.AppConfig
	out     io.Writer
	logger  *slog.Logger
	confirm confirmFunc
}

func (c *cli) dispatch(ctx context.Context, name string, args []string) error {
	switch name {
	case "list", "ls":
		return c.list(ctx, args)
	case "check":
		return c.check(ctx, args)
	case "reset":
		return c.reset(ctx, args)
	case "seed":
		return c.seed(ctx, args)
	case "export":
		return c.export(ctx, args)
	case "import":
		return c.importCSV(ctx, args)
	case "backend":
		return c.backend(ctx)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, name)
	}
}

func newFlags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not a valid id", errUsage, arg)
	}
	return id, nil
}

func (c *cli) list(ctx context.Context, args []string) error {
	fs := newFlags("list")
	groupID := fs.Int64("group", 0, "only this group")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	if *groupID != 0 {
		group, err := c.store.GetChecklistGroup(ctx, *groupID)
		if err != nil {
			return err
		}
		if group == nil {
			return fmt.Errorf("group %d: %w", *groupID, store.ErrNotFound)
		}
		checklists, err := c.store.GetChecklistsByGroupID(ctx, group.ID)
		if err != nil {
			return err
		}
		_, err = io.WriteString(c.out, renderGroup(*group, checklists))
		return err
	}

	groups, err := c.store.GetAllChecklistGroups(ctx)
	if err != nil {
		return err
	}
	byGroup := make(map[int64][]model.Checklist, len(groups))
	for _, g := range groups {
		checklists, err := c.store.GetChecklistsByGroupID(ctx, g.ID)
		if err != nil {
			return err
		}
		byGroup[g.ID] = checklists
	}
	ungrouped, err := c.store.GetUngroupedChecklists(ctx)
	if err != nil {
		return err
	}

	_, err = io.WriteString(c.out, renderAll(groups, byGroup, ungrouped))
	return err
}

func (c *cli) check(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: check takes one item id", errUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	item, err := c.store.GetChecklistItem(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("item %d: %w", id, store.ErrNotFound)
	}
	done := !item.IsDone
	if err := c.store.UpdateChecklistItem(ctx, id, model.ItemPatch{IsDone: &done}); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s %s\n", theme.Checkbox(done), item.Title)
	return nil
}

func (c *cli) reset(ctx context.Context, args []string) error {
	fs := newFlags("reset")
	groupID := fs.Int64("group", 0, "reset every checklist of this group")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	var resetFn func() (int, error)
	switch {
	case *groupID != 0 && fs.NArg() == 0:
		resetFn = func() (int, error) { return c.store.ResetChecklistItemsByGroupID(ctx, *groupID) }
	case *groupID == 0 && fs.NArg() == 1:
		id, err := parseID(fs.Arg(0))
		if err != nil {
			return err
		}
		resetFn = func() (int, error) { return c.store.ResetChecklistItemsByChecklistID(ctx, id) }
	default:
		return fmt.Errorf("%w: reset takes a checklist id or --group", errUsage)
	}

	ok, err := c.confirm("Reset checklist?", "Every checked item will be unchecked.")
	if err != nil || !ok {
		return err
	}
	n, err := resetFn()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "unchecked %d item(s)\n", n)
	return nil
}

func (c *cli) seed(ctx context.Context, args []string) error {
	fs := newFlags("seed")
	clearFirst := fs.Bool("clear", false, "delete everything before seeding")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	if *clearFirst {
		ok, err := c.confirm("Delete everything?", "All groups, checklists and items are removed before seeding.")
		if err != nil || !ok {
			return err
		}
		if err := seed.Clear(ctx, c.store); err != nil {
			return err
		}
	}
	res, err := seed.Load(ctx, c.store)
	if errors.Is(err, seed.ErrAlreadySeeded) {
		fmt.Fprintln(c.out, theme.HelpStyle.Render("store already has groups; use --clear to start over"))
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "created %d checklist(s) with %d item(s) in group %d\n", res.Checklists, res.Items, res.GroupID)
	return nil
}

func (c *cli) export(ctx context.Context, args []string) error {
	fs := newFlags("export")
	out := fs.StringP("out", "o", "", "output file (default stdout)")
	groups := fs.Int64Slice("group", nil, "export only these groups")
	checklists := fs.Int64Slice("checklist", nil, "export only these ungrouped checklists")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	sel := exchange.Selection{}
	if fs.Changed("group") || fs.Changed("checklist") {
		sel.GroupIDs = append([]int64{}, *groups...)
		sel.ChecklistIDs = append([]int64{}, *checklists...)
	}
	rows, err := exchange.Export(ctx, c.store, sel)
	if err != nil {
		return err
	}

	if *out == "" {
		return exchange.WriteCSV(c.out, rows)
	}
	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", *out, err)
	}
	if err := exchange.WriteCSV(f, rows); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	c.logger.Info("exported", "rows", len(rows), "file", *out)
	return nil
}

func (c *cli) importCSV(ctx context.Context, args []string) error {
	fs := newFlags("import")
	overwrite := fs.Bool("overwrite", false, "delete existing groups and checklists first")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: import takes one file", errUsage)
	}

	if *overwrite {
		ok, err := c.confirm("Replace existing checklists?", "All groups and checklists are deleted before importing.")
		if err != nil || !ok {
			return err
		}
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("opening %s: %w", fs.Arg(0), err)
	}
	defer f.Close()

	rows, err := exchange.ReadCSV(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", fs.Arg(0), err)
	}
	sum, err := exchange.Import(ctx, c.store, rows, exchange.Options{Overwrite: *overwrite})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "imported %d group(s), %d checklist(s), %d item(s)\n", sum.Groups, sum.Checklists, sum.Items)
	return nil
}

func (c *cli) backend(ctx context.Context) error {
	kind, err := c.store.Kind(ctx)
	if err != nil {
		return err
	}

	where := c.cfg.Storage.DatabasePath()
	if kind == store.KindFlat {
		where = c.cfg.Storage.FlatPath()
		if c.cfg.Storage.Flat.Slot == model.SlotKeyring {
			where = "keyring:" + c.cfg.Storage.DataDir
		}
	}
	fmt.Fprintf(c.out, "%s %s\n", theme.StatusStyle.Render(string(kind)), where)
	return nil
}
