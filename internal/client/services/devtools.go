package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/arnorgym/internal/client/directory"
	"github.com/dmitrijs2005/arnorgym/internal/client/transfer"
)

// DevToolsService is the maintenance surface for power users.
type DevToolsService interface {
	// Users returns a snapshot of the directory.
	Users(ctx context.Context) *directory.Directory
	// Export writes the directory to uri and returns the resolved location.
	Export(ctx context.Context, uri string) (string, error)
	// Import merges the document at uri into the directory.
	Import(ctx context.Context, uri string) (int, error)
	ClearAll(ctx context.Context) error
	AddTestUser(ctx context.Context) error
}

// TargetOpener resolves an export/import location.
type TargetOpener func(ctx context.Context, uri string) (transfer.Target, error)

func (g *Gym) Users(_ context.Context) *directory.Directory {
	return g.dir.Clone()
}

func (g *Gym) Export(ctx context.Context, uri string) (string, error) {
	doc, err := directory.Export(g.dir)
	if err != nil {
		return "", err
	}
	tgt, err := g.opener(ctx, uri)
	if err != nil {
		return "", err
	}
	if err := tgt.Write(ctx, doc); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	g.log.Info(ctx, "users exported", "location", tgt.Location(), "users", g.dir.Len())
	return tgt.Location(), nil
}

func (g *Gym) Import(ctx context.Context, uri string) (int, error) {
	tgt, err := g.opener(ctx, uri)
	if err != nil {
		return 0, err
	}
	doc, err := tgt.Read(ctx)
	if err != nil {
		return 0, fmt.Errorf("import: %w", err)
	}
	return g.store.Import(ctx, doc, g.dir)
}

func (g *Gym) ClearAll(ctx context.Context) error {
	return g.store.Clear(ctx, g.dir)
}

func (g *Gym) AddTestUser(ctx context.Context) error {
	_, err := g.store.AddTestUser(ctx, g.dir)
	return err
}
