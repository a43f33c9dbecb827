package model

/*

User is an account that authors posts and follows other accounts

UserID: primary key
Followers: denormalized count of follow edges pointing at this user
Following: denormalized count of follow edges originating from this user

Both counters are nullable in the store and treated as 0 when null. They
are maintained only by the follow toggle and approximate the edge counts
under concurrent toggles.

*/

type User struct {
	UserID      int64 `gorm:"primaryKey"`
	Username    string
	DisplayName string
	Bio         string
	ProfilePic  string
	Followers   *int
	Following   *int
}
