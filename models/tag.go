package models

// Tag is one entry of the tag catalog. SteamTagID links the row to the
// store's own tag numbering; rows with SteamTagID=0 have no store
// counterpart and are excluded from name-based signal consumers.
type Tag struct {
	ID         int64  `json:"id"`
	NameKO     string `json:"name_ko"`
	NameEN     string `json:"name_en"`
	SteamTagID int64  `json:"steam_tag_id"`
}

// TagOption is the {name, steam id} pair handed to the text-understanding
// prompts as vocabulary. Anything the model returns outside this vocabulary
// is dropped by the caller.
type TagOption struct {
	NameKO     string `json:"name_ko"`
	SteamTagID int64  `json:"steam_tag_id"`
}

// Interest is a curated persona game used to seed tag affinities.
type Interest struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
