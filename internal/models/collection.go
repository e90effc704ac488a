package models

// Collection names one of the externally maintained JSON documents served by
// the site. The set is closed; see content.Filename.
type Collection string

const (
	CollectionProducts   Collection = "productos"
	CollectionPrograms   Collection = "programas"
	CollectionCommunity  Collection = "comunidad"
	CollectionPromotions Collection = "promociones"
)

var Collections = []Collection{
	CollectionProducts,
	CollectionPrograms,
	CollectionCommunity,
	CollectionPromotions,
}
