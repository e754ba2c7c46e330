package dispatch

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/watchlist-cli/internal/feed"
	"github.com/sells-group/watchlist-cli/internal/model"
)

// Child-collection extractors shared by the person and entity dispatchers.
// Each walks the feed's nested structure for one collection and returns the
// records in document order.

func childText(n *feed.Node, name string) string {
	return feed.ExtractText(n.Child(name))
}

// parseNames: NameDetails > Name (NameType attr) > NameValue, one record per
// NameValue so alternate spellings under one Name element stay separate.
func parseNames(n *feed.Node) []model.Name {
	var out []model.Name
	for _, details := range n.Each("NameDetails") {
		for _, name := range details.Each("Name") {
			nameType := name.Attr("NameType")
			for _, v := range name.Each("NameValue") {
				out = append(out, model.Name{
					NameType:       nameType,
					TitleHon:       childText(v, "TitleHonorific"),
					FirstName:      childText(v, "FirstName"),
					MiddleName:     childText(v, "MiddleName"),
					Surname:        childText(v, "Surname"),
					MaidenName:     childText(v, "MaidenName"),
					Suffix:         childText(v, "Suffix"),
					EntityName:     childText(v, "EntityName"),
					OriginalScript: childText(v, "OriginalScriptName"),
				})
			}
		}
	}
	return out
}

// parseDescriptions: Descriptions > Description with up to three level
// attributes. A record with no level set at all is dropped.
func parseDescriptions(n *feed.Node) []model.Description {
	var out []model.Description
	for _, ds := range n.Each("Descriptions") {
		for _, d := range ds.Each("Description") {
			rec := model.Description{
				Level1: parseInt64Ptr(d.Attr("Description1")),
				Level2: parseInt64Ptr(d.Attr("Description2")),
				Level3: parseInt64Ptr(d.Attr("Description3")),
			}
			if rec.Level1 == nil && rec.Level2 == nil && rec.Level3 == nil {
				continue
			}
			out = append(out, rec)
		}
	}
	return out
}

// parseRoles: RoleDetail > Roles (RoleType attr) > OccTitle. The occupation
// category is required; under child isolation a bad role is skipped and
// counted, otherwise it fails the whole record.
func parseRoles(n *feed.Node, isolate bool) ([]model.Role, int, error) {
	var out []model.Role
	var skipped int
	for _, detail := range n.Each("RoleDetail") {
		for _, roles := range detail.Each("Roles") {
			roleType := roles.Attr("RoleType")
			for _, occ := range roles.Each("OccTitle") {
				code := parseInt64Ptr(occ.Attr("OccCat"))
				if code == nil {
					if isolate {
						skipped++
						continue
					}
					return nil, 0, eris.Errorf("role %q missing occupation code", roleType)
				}
				out = append(out, model.Role{
					RoleType:       roleType,
					OccupationCode: code,
					Title:          feed.ExtractText(occ),
					SinceDate:      feed.ResolveDate(occ.Attr("SinceDay"), occ.Attr("SinceMonth"), occ.Attr("SinceYear")),
					ToDate:         feed.ResolveDate(occ.Attr("ToDay"), occ.Attr("ToMonth"), occ.Attr("ToYear")),
				})
			}
		}
	}
	return out, skipped, nil
}

// parseDates: DateDetails > Date (DateType attr) > DateValue with either
// Day/Month/Year attributes or a composed text value.
func parseDates(n *feed.Node) []model.DateDetail {
	var out []model.DateDetail
	for _, details := range n.Each("DateDetails") {
		for _, date := range details.Each("Date") {
			dateType := date.Attr("DateType")
			for _, v := range date.Each("DateValue") {
				out = append(out, model.DateDetail{
					DateType: dateType,
					Date:     feed.ResolveDateNode(v),
					Notes:    v.Attr("Notes"),
				})
			}
		}
	}
	return out
}

func parseAddresses(n *feed.Node) []model.Address {
	var out []model.Address
	for _, a := range n.Each("Address") {
		out = append(out, model.Address{
			Line:        childText(a, "AddressLine"),
			City:        childText(a, "AddressCity"),
			Province:    childText(a, "AddressProvince"),
			PostalCode:  childText(a, "PostalCode"),
			CountryCode: childText(a, "AddressCountry"),
			URL:         childText(a, "URL"),
		})
	}
	return out
}

// parseDocuments: IDNumberTypes > ID (IDType attr) > IDValue; issue and
// expiry arrive as day/month/year attribute triples on the ID element.
func parseDocuments(n *feed.Node) []model.Document {
	var out []model.Document
	for _, types := range n.Each("IDNumberTypes") {
		for _, id := range types.Each("ID") {
			idType := id.Attr("IDType")
			issue := feed.ResolveDate(id.Attr("IssueDay"), id.Attr("IssueMonth"), id.Attr("IssueYear"))
			expiry := feed.ResolveDate(id.Attr("ExpiryDay"), id.Attr("ExpiryMonth"), id.Attr("ExpiryYear"))
			for _, v := range id.Each("IDValue") {
				out = append(out, model.Document{
					IDType:     idType,
					Number:     feed.ExtractText(v),
					Notes:      v.Attr("IDnotes"),
					IssueDate:  issue,
					ExpiryDate: expiry,
				})
			}
		}
	}
	return out
}

func parseImages(n *feed.Node) []model.Image {
	var out []model.Image
	for _, images := range n.Each("Images") {
		for _, img := range images.Each("Image") {
			if url := img.Attr("URL"); url != "" {
				out = append(out, model.Image{URL: url})
			}
		}
	}
	return out
}

func parseBirthPlaces(n *feed.Node) []model.BirthPlace {
	var out []model.BirthPlace
	for _, bp := range n.Each("BirthPlace") {
		for _, place := range bp.Each("Place") {
			out = append(out, model.BirthPlace{
				Place:       place.Attr("name"),
				CountryCode: place.Attr("CountryCode"),
			})
		}
	}
	return out
}

// parseSanctions: SanctionsReferences > Reference; the reference code is the
// element text, validity bounds are attribute triples.
func parseSanctions(n *feed.Node) []model.SanctionLink {
	var out []model.SanctionLink
	for _, refs := range n.Each("SanctionsReferences") {
		for _, ref := range refs.Each("Reference") {
			code := parseInt64Ptr(feed.ExtractText(ref))
			if code == nil {
				continue
			}
			out = append(out, model.SanctionLink{
				ReferenceCode: *code,
				SinceDate:     feed.ResolveDate(ref.Attr("SinceDay"), ref.Attr("SinceMonth"), ref.Attr("SinceYear")),
				ToDate:        feed.ResolveDate(ref.Attr("ToDay"), ref.Attr("ToMonth"), ref.Attr("ToYear")),
			})
		}
	}
	return out
}

func parseSources(n *feed.Node) []model.SourceLink {
	var out []model.SourceLink
	for _, sd := range n.Each("SourceDescription") {
		for _, src := range sd.Each("Source") {
			if name := src.Attr("name"); name != "" {
				out = append(out, model.SourceLink{Name: name})
			}
		}
	}
	return out
}

// parseVessels: VesselDetails, one vessel per element, scalar children.
func parseVessels(n *feed.Node) []model.Vessel {
	var out []model.Vessel
	for _, v := range n.Each("VesselDetails") {
		out = append(out, model.Vessel{
			CallSign:   childText(v, "VesselCallSign"),
			VesselType: childText(v, "VesselType"),
			Tonnage:    childText(v, "VesselTonnage"),
			GRT:        childText(v, "VesselGRT"),
			Owner:      childText(v, "VesselOwner"),
			Flag:       childText(v, "VesselFlag"),
		})
	}
	return out
}
