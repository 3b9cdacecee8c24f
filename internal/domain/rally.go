package domain

import "time"

// RallyEdge is a directed follow relationship between two users
type RallyEdge struct {
	FollowerID uint      `gorm:"primaryKey;autoIncrement:false" json:"followerId"`
	FollowedID uint      `gorm:"primaryKey;autoIncrement:false;index:idx_rally_edges_followed_id" json:"followedId"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	Follower   *User     `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"-"`
	Followed   *User     `gorm:"foreignKey:FollowedID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for RallyEdge
func (RallyEdge) TableName() string {
	return "rally_edges"
}
