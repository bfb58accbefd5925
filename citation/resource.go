package citation

import (
	"github.com/McNamara84/ernie-sub013/datacite"
)

// FromResource maps a curated resource onto the current record shape so a
// citation can be rendered for a submission before it is published.
func FromResource(resource datacite.Resource, publisher string) Record {
	record := Record{
		Year:      resource.Year,
		Publisher: publisher,
		DOI:       resource.DOI,
	}
	for _, author := range resource.Authors {
		creatorable := Creatorable{Type: author.Type}
		if author.Type == datacite.AgentTypeInstitution {
			creatorable.Name = author.InstitutionName
		} else {
			creatorable.GivenName = author.FirstName
			creatorable.FamilyName = author.LastName
		}
		record.Creators = append(record.Creators, Creator{Creatorable: &creatorable})
	}
	for _, title := range resource.Titles {
		record.Titles = append(record.Titles, Title{
			Title:     title.Title,
			TitleType: title.TitleType,
		})
	}
	return record
}
