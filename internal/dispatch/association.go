package dispatch

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/watchlist-cli/internal/feed"
	"github.com/sells-group/watchlist-cli/internal/gateway"
	"github.com/sells-group/watchlist-cli/internal/model"
)

// Association persists relationship edges held by PublicFigure and
// SpecialEntity elements. The associate's endpoint kind is resolved by
// existence lookup against already-persisted persons, not by anything the
// feed declares; an associate whose ID is not a known person is written with
// the entity kind and counted as unresolved.
//
// The holder's prior edges are replaced in one transaction, then each
// associate's generic edge and shadow edge commit as their own atomic pair,
// so a failing associate never blocks its siblings.
type Association struct {
	gw    gateway.Gateway
	stats *Stats
	log   *zap.Logger
}

func NewAssociation(gw gateway.Gateway, stats *Stats) *Association {
	return &Association{
		gw:    gw,
		stats: stats,
		log:   zap.L().With(zap.String("component", "dispatch.association")),
	}
}

func (d *Association) Register(s *feed.Stream) {
	s.Subscribe("PublicFigure", guard(d.stats, "public_figure", d.holder(model.KindPerson)))
	s.Subscribe("SpecialEntity", guard(d.stats, "special_entity", d.holder(model.KindEntity)))
}

func (d *Association) holder(kind model.EntityKind) func(context.Context, *feed.Node) error {
	return func(ctx context.Context, n *feed.Node) error {
		id := parseInt64Ptr(n.Attr("id"))
		if id == nil {
			return eris.New("association holder missing id")
		}
		holder := model.OwnerRef{Kind: kind, ID: *id}

		err := runRecordTx(ctx, d.gw, func(tx gateway.RecordTx) error {
			return tx.DeleteAssociations(ctx, holder)
		})
		if err != nil {
			return eris.Wrapf(err, "replace edges for holder %d", holder.ID)
		}

		for _, an := range n.Each("Associate") {
			if err := d.associate(ctx, holder, an); err != nil {
				d.stats.Fail("associate", an.Attr("id"), err)
			}
		}
		return nil
	}
}

func (d *Association) associate(ctx context.Context, holder model.OwnerRef, an *feed.Node) error {
	targetID := parseInt64Ptr(an.Attr("id"))
	if targetID == nil {
		return eris.New("associate missing id")
	}

	targetKind := model.KindEntity
	isPerson, err := d.gw.PersonExists(ctx, *targetID)
	if err != nil {
		return eris.Wrapf(err, "resolve kind of associate %d", *targetID)
	}
	if isPerson {
		targetKind = model.KindPerson
	} else {
		// Either a genuine entity or a person the feed has not emitted yet;
		// the lookup cannot tell them apart.
		d.stats.UnresolvedKind()
		d.log.Debug("associate not a known person",
			zap.Int64("holder", holder.ID),
			zap.Int64("associate", *targetID),
		)
	}

	a := model.Association{
		SourceID:         holder.ID,
		SourceKind:       holder.Kind,
		TargetID:         *targetID,
		TargetKind:       targetKind,
		RelationshipCode: parseInt64Or(an.Attr("code"), 0),
		IsFormer:         boolToken(an.Attr("ex"), "true"),
		SinceDate:        feed.ResolveDate(an.Attr("SinceDay"), an.Attr("SinceMonth"), an.Attr("SinceYear")),
		ToDate:           feed.ResolveDate(an.Attr("ToDay"), an.Attr("ToMonth"), an.Attr("ToYear")),
	}

	return runRecordTx(ctx, d.gw, func(tx gateway.RecordTx) error {
		if err := tx.InsertAssociation(ctx, a); err != nil {
			return err
		}
		return tx.InsertShadowAssociation(ctx, holder.Kind, a)
	})
}
