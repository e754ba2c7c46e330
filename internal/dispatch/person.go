package dispatch

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/watchlist-cli/internal/feed"
	"github.com/sells-group/watchlist-cli/internal/gateway"
	"github.com/sells-group/watchlist-cli/internal/model"
)

// Person persists sanctioned individuals: one parent upsert and a fixed-order
// fan-out over the present child collections, all inside one record
// transaction. Re-ingesting an ID replaces its children rather than
// duplicating them.
type Person struct {
	gw              gateway.Gateway
	stats           *Stats
	isolateChildren bool
	log             *zap.Logger
}

func NewPerson(gw gateway.Gateway, stats *Stats, isolateChildren bool) *Person {
	return &Person{
		gw:              gw,
		stats:           stats,
		isolateChildren: isolateChildren,
		log:             zap.L().With(zap.String("component", "dispatch.person")),
	}
}

func (d *Person) Register(s *feed.Stream) {
	s.Subscribe("Person", guard(d.stats, "person", d.handle))
}

func (d *Person) handle(ctx context.Context, n *feed.Node) error {
	p, skipped, err := parsePerson(n, d.isolateChildren)
	if err != nil {
		return err
	}
	if skipped > 0 {
		d.log.Warn("skipped malformed children",
			zap.Int64("person", p.ID),
			zap.Int("skipped", skipped),
		)
	}

	owner := model.OwnerRef{Kind: model.KindPerson, ID: p.ID}
	return runRecordTx(ctx, d.gw, func(tx gateway.RecordTx) error {
		if err := tx.UpsertPerson(ctx, p); err != nil {
			return err
		}
		if err := tx.DeleteChildren(ctx, owner); err != nil {
			return err
		}
		for _, c := range p.Names {
			if err := tx.InsertName(ctx, owner, c); err != nil {
				return err
			}
		}
		for _, c := range p.Descriptions {
			if err := tx.InsertDescription(ctx, owner, c); err != nil {
				return err
			}
		}
		for _, c := range p.Roles {
			if err := tx.InsertRole(ctx, p.ID, c); err != nil {
				return err
			}
		}
		for _, c := range p.Dates {
			if err := tx.InsertDate(ctx, owner, c); err != nil {
				return err
			}
		}
		for _, c := range p.Addresses {
			if err := tx.InsertAddress(ctx, owner, c); err != nil {
				return err
			}
		}
		for _, c := range p.Documents {
			if err := tx.InsertDocument(ctx, p.ID, c); err != nil {
				return err
			}
		}
		for _, c := range p.Images {
			if err := tx.InsertImage(ctx, owner, c); err != nil {
				return err
			}
		}
		for _, c := range p.BirthPlaces {
			if err := tx.InsertBirthPlace(ctx, p.ID, c); err != nil {
				return err
			}
		}
		for _, c := range p.Sanctions {
			if err := tx.InsertSanction(ctx, owner, c); err != nil {
				return err
			}
		}
		for _, c := range p.Sources {
			if err := tx.InsertSource(ctx, owner, c); err != nil {
				return err
			}
		}
		return nil
	})
}

func parsePerson(n *feed.Node, isolate bool) (*model.Person, int, error) {
	id := parseInt64Ptr(n.Attr("id"))
	if id == nil {
		return nil, 0, eris.New("person missing id")
	}

	roles, skipped, err := parseRoles(n, isolate)
	if err != nil {
		return nil, 0, err
	}

	return &model.Person{
		ID:           *id,
		Action:       model.ActionCode(n.Attr("action")),
		Date:         feed.ResolveComposed(n.Attr("date")),
		Gender:       childText(n, "Gender"),
		ActiveStatus: childText(n, "ActiveStatus"),
		Deceased:     boolToken(childText(n, "Deceased"), "Yes"),
		ProfileNotes: childText(n, "ProfileNotes"),
		Names:        parseNames(n),
		Descriptions: parseDescriptions(n),
		Roles:        roles,
		Dates:        parseDates(n),
		Addresses:    parseAddresses(n),
		Documents:    parseDocuments(n),
		Images:       parseImages(n),
		BirthPlaces:  parseBirthPlaces(n),
		Sanctions:    parseSanctions(n),
		Sources:      parseSources(n),
	}, skipped, nil
}
