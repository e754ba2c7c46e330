package dispatch

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/watchlist-cli/internal/feed"
	"github.com/sells-group/watchlist-cli/internal/gateway"
	"github.com/sells-group/watchlist-cli/internal/model"
)

// Entity persists sanctioned organizations. Same discipline as the person
// dispatcher minus roles, documents, and birth places, plus vessel details.
type Entity struct {
	gw              gateway.Gateway
	stats           *Stats
	isolateChildren bool
	log             *zap.Logger
}

func NewEntity(gw gateway.Gateway, stats *Stats, isolateChildren bool) *Entity {
	return &Entity{
		gw:              gw,
		stats:           stats,
		isolateChildren: isolateChildren,
		log:             zap.L().With(zap.String("component", "dispatch.entity")),
	}
}

func (d *Entity) Register(s *feed.Stream) {
	s.Subscribe("Entity", guard(d.stats, "entity", d.handle))
}

func (d *Entity) handle(ctx context.Context, n *feed.Node) error {
	e, err := parseEntity(n)
	if err != nil {
		return err
	}

	owner := model.OwnerRef{Kind: model.KindEntity, ID: e.ID}
	return runRecordTx(ctx, d.gw, func(tx gateway.RecordTx) error {
		if err := tx.UpsertEntity(ctx, e); err != nil {
			return err
		}
		if err := tx.DeleteChildren(ctx, owner); err != nil {
			return err
		}
		for _, c := range e.Names {
			if err := tx.InsertName(ctx, owner, c); err != nil {
				return err
			}
		}
		for _, c := range e.Descriptions {
			if err := tx.InsertDescription(ctx, owner, c); err != nil {
				return err
			}
		}
		for _, c := range e.Dates {
			if err := tx.InsertDate(ctx, owner, c); err != nil {
				return err
			}
		}
		for _, c := range e.Addresses {
			if err := tx.InsertAddress(ctx, owner, c); err != nil {
				return err
			}
		}
		for _, c := range e.Images {
			if err := tx.InsertImage(ctx, owner, c); err != nil {
				return err
			}
		}
		for _, c := range e.Sanctions {
			if err := tx.InsertSanction(ctx, owner, c); err != nil {
				return err
			}
		}
		for _, c := range e.Sources {
			if err := tx.InsertSource(ctx, owner, c); err != nil {
				return err
			}
		}
		for _, c := range e.Vessels {
			if err := tx.InsertVessel(ctx, e.ID, c); err != nil {
				return err
			}
		}
		return nil
	})
}

func parseEntity(n *feed.Node) (*model.Entity, error) {
	id := parseInt64Ptr(n.Attr("id"))
	if id == nil {
		return nil, eris.New("entity missing id")
	}

	return &model.Entity{
		ID:           *id,
		Action:       model.ActionCode(n.Attr("action")),
		Date:         feed.ResolveComposed(n.Attr("date")),
		ActiveStatus: childText(n, "ActiveStatus"),
		EntityKind:   childText(n, "EntityType"),
		ProfileNotes: childText(n, "ProfileNotes"),
		Names:        parseNames(n),
		Descriptions: parseDescriptions(n),
		Dates:        parseDates(n),
		Addresses:    parseAddresses(n),
		Images:       parseImages(n),
		Sanctions:    parseSanctions(n),
		Sources:      parseSources(n),
		Vessels:      parseVessels(n),
	}, nil
}
