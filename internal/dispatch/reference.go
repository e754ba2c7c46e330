package dispatch

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/watchlist-cli/internal/feed"
	"github.com/sells-group/watchlist-cli/internal/gateway"
	"github.com/sells-group/watchlist-cli/internal/model"
)

// Reference persists the vocabulary elements. Each is a single conflict-
// tolerant upsert with no child fan-out; the writes autocommit outside the
// record transaction discipline.
type Reference struct {
	gw    gateway.Gateway
	stats *Stats
	log   *zap.Logger
}

func NewReference(gw gateway.Gateway, stats *Stats) *Reference {
	return &Reference{
		gw:    gw,
		stats: stats,
		log:   zap.L().With(zap.String("component", "dispatch.reference")),
	}
}

func (d *Reference) Register(s *feed.Stream) {
	s.Subscribe("CountryName", guard(d.stats, "country", d.country))
	s.Subscribe("Occupation", guard(d.stats, "occupation", d.occupation))
	s.Subscribe("Relationship", guard(d.stats, "relationship", d.relationship))
	s.Subscribe("ReferenceName", guard(d.stats, "sanctions_reference", d.sanctionsReference))
	s.Subscribe("Description1Name", guard(d.stats, "description_type", d.descriptionLevel(1)))
	s.Subscribe("Description2Name", guard(d.stats, "description_type", d.descriptionLevel(2)))
	s.Subscribe("Description3Name", guard(d.stats, "description_type", d.descriptionLevel(3)))
	s.Subscribe("DateType", guard(d.stats, "date_type", d.dateType))
	s.Subscribe("NameType", guard(d.stats, "name_type", d.nameType))
	s.Subscribe("RoleType", guard(d.stats, "role_type", d.roleType))
}

func (d *Reference) country(ctx context.Context, n *feed.Node) error {
	code := n.Attr("code")
	if code == "" {
		return eris.New("country missing code")
	}
	return d.gw.UpsertCountry(ctx, model.Country{
		Code:        code,
		Name:        feed.ExtractText(n),
		IsTerritory: boolToken(n.Attr("IsTerritory"), "true"),
		ProfileURL:  n.Attr("ProfileURL"),
	})
}

func (d *Reference) occupation(ctx context.Context, n *feed.Node) error {
	code := parseInt64Ptr(n.Attr("code"))
	if code == nil {
		return eris.New("occupation missing code")
	}
	return d.gw.UpsertOccupation(ctx, model.Occupation{Code: *code, Name: feed.ExtractText(n)})
}

func (d *Reference) relationship(ctx context.Context, n *feed.Node) error {
	code := parseInt64Ptr(n.Attr("code"))
	if code == nil {
		return eris.New("relationship missing code")
	}
	return d.gw.UpsertRelationship(ctx, model.Relationship{Code: *code, Name: feed.ExtractText(n)})
}

// sanctionsReference may point into the level-2 classification tree. A
// forward reference within the same feed is nulled rather than rejected.
func (d *Reference) sanctionsReference(ctx context.Context, n *feed.Node) error {
	code := parseInt64Ptr(n.Attr("code"))
	if code == nil {
		return eris.New("sanctions reference missing code")
	}
	desc2 := parseInt64Ptr(n.Attr("Description2Id"))
	if desc2 != nil {
		ok, err := d.gw.DescriptionTypeExists(ctx, 2, *desc2)
		if err != nil {
			return eris.Wrap(err, "check description type")
		}
		if !ok {
			d.log.Debug("nulling unseen description type link",
				zap.Int64("reference", *code),
				zap.Int64("description2", *desc2),
			)
			desc2 = nil
		}
	}
	return d.gw.UpsertSanctionsReference(ctx, model.SanctionsReference{
		Code:         *code,
		Name:         feed.ExtractText(n),
		Status:       n.Attr("status"),
		Description2: desc2,
	})
}

func (d *Reference) descriptionLevel(level int) func(context.Context, *feed.Node) error {
	return func(ctx context.Context, n *feed.Node) error {
		id := parseInt64Ptr(n.Attr(fmt.Sprintf("Description%dId", level)))
		if id == nil {
			return eris.Errorf("description level %d missing id", level)
		}
		var parent *int64
		if level > 1 {
			parent = parseInt64Ptr(n.Attr(fmt.Sprintf("Description%dId", level-1)))
		}
		return d.gw.UpsertDescriptionType(ctx, model.DescriptionType{
			Level:      level,
			ID:         *id,
			ParentID:   parent,
			Text:       feed.ExtractText(n),
			RecordType: n.Attr("RecordType"),
		})
	}
}

func (d *Reference) dateType(ctx context.Context, n *feed.Node) error {
	id := parseInt64Ptr(n.Attr("Id"))
	if id == nil {
		return eris.New("date type missing id")
	}
	return d.gw.UpsertDateType(ctx, model.DateType{ID: *id, Name: feed.ExtractText(n)})
}

func (d *Reference) nameType(ctx context.Context, n *feed.Node) error {
	id := parseInt64Ptr(n.Attr("NameTypeID"))
	if id == nil {
		return eris.New("name type missing id")
	}
	return d.gw.UpsertNameType(ctx, model.NameType{
		ID:         *id,
		Name:       feed.ExtractText(n),
		RecordType: n.Attr("RecordType"),
	})
}

func (d *Reference) roleType(ctx context.Context, n *feed.Node) error {
	id := parseInt64Ptr(n.Attr("Id"))
	if id == nil {
		return eris.New("role type missing id")
	}
	return d.gw.UpsertRoleType(ctx, model.RoleType{ID: *id, Name: feed.ExtractText(n)})
}
