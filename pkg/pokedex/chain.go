package pokedex

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"
)

// ChainBuilder assembles evolution chains. Official records walk the
// catalog's recursive chain resource; custom records expand their flat
// evolutions list into a single level of children.
type ChainBuilder struct {
	official *OfficialClient
	resolver *Resolver
}

// NewChainBuilder creates a builder. The resolver is used for per-node
// sprite lookups so chain sprites share the session cache.
func NewChainBuilder(official *OfficialClient, resolver *Resolver) *ChainBuilder {
	return &ChainBuilder{official: official, resolver: resolver}
}

// BuildChain returns the evolution tree rooted at the resolved record's
// base form. Cancelling ctx aborts all pending work.
func (b *ChainBuilder) BuildChain(ctx context.Context, record *Record) (*Stage, error) {
	if record.IsCustom {
		return b.buildCustom(ctx, record)
	}
	return b.buildOfficial(ctx, record)
}

func (b *ChainBuilder) buildOfficial(ctx context.Context, record *Record) (*Stage, error) {
	chainURL, err := b.official.evolutionChainURL(ctx, record.Name)
	if err != nil {
		return nil, err
	}

	chain, err := b.official.evolutionChain(ctx, chainURL)
	if err != nil {
		return nil, err
	}

	return b.walk(ctx, chain, nil)
}

// walk descends the catalog's chain tree, decorating each node with a
// sprite and mapping the first evolution-detail entry onto each child.
func (b *ChainBuilder) walk(ctx context.Context, link *chainLink, trigger *EvolutionDetail) (*Stage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stage := &Stage{
		Name:     link.Species.Name,
		Sprite:   b.lookupSprite(ctx, link.Species.Name),
		Trigger:  trigger,
		Children: []*Stage{},
	}

	for i := range link.EvolvesTo {
		child := &link.EvolvesTo[i]

		var detail *EvolutionDetail
		if len(child.EvolutionDetails) > 0 {
			detail = mapEvolutionDetail(&child.EvolutionDetails[0])
		}

		childStage, err := b.walk(ctx, child, detail)
		if err != nil {
			return nil, err
		}
		stage.Children = append(stage.Children, childStage)
	}

	return stage, nil
}

// buildCustom expands the flat evolutions list into direct, triggerless
// children. Custom chains are exactly one level deep by construction.
func (b *ChainBuilder) buildCustom(ctx context.Context, record *Record) (*Stage, error) {
	root := &Stage{
		Name:     record.Name,
		Sprite:   record.Sprite,
		Children: make([]*Stage, len(record.Evolutions)),
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range record.Evolutions {
		g.Go(func() error {
			// Per-child sprite failures degrade to an empty sprite;
			// only cancellation aborts the whole assembly.
			root.Children[i] = &Stage{
				Name:     name,
				Sprite:   b.lookupSprite(gctx, name),
				Children: []*Stage{},
			}
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return root, nil
}

// lookupSprite resolves a sprite by name, absorbing failures as "no sprite"
func (b *ChainBuilder) lookupSprite(ctx context.Context, name string) string {
	record, err := b.resolver.Resolve(ctx, name)
	if err != nil {
		if !IsCancelled(err) {
			log.Printf("[Chain] sprite lookup failed for %q: %v", name, err)
		}
		return ""
	}
	return record.Sprite
}

func mapEvolutionDetail(raw *evolutionDetailPayload) *EvolutionDetail {
	detail := &EvolutionDetail{
		Trigger:      raw.Trigger.Name,
		MinLevel:     raw.MinLevel,
		TimeOfDay:    raw.TimeOfDay,
		MinHappiness: raw.MinHappiness,
	}
	if raw.Item != nil {
		detail.Item = raw.Item.Name
	}
	if raw.HeldItem != nil {
		detail.HeldItem = raw.HeldItem.Name
	}

	conditions := ""
	if raw.KnownMove != nil {
		conditions = fmt.Sprintf("knows %s", raw.KnownMove.Name)
	}
	if raw.Location != nil {
		if conditions != "" {
			conditions += ", "
		}
		conditions += fmt.Sprintf("at %s", raw.Location.Name)
	}
	detail.Conditions = conditions

	return detail
}
