package domain

// Card is one collectible card definition from the catalog. The engine only
// needs identity and rarity; art, text, and collection state live elsewhere.
type Card struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Rarity Rarity `json:"rarity"`
}
