package models

// explicit join model so the genre m2m table gets its own id column; the
// unique pair index keeps association upserts from duplicating links
type TitleGenre struct {
	ID      int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	TitleID int64 `json:"title_id" gorm:"not null;uniqueIndex:idx_title_genre"`
	GenreID int64 `json:"genre_id" gorm:"not null;index;uniqueIndex:idx_title_genre"`
}

func (TitleGenre) TableName() string {
	return "title_genres"
}
