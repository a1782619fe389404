package models

import "github.com/google/uuid"

// Hotel anchors the ownership chain Hotel → RoomType → Rate. Only the
// identifiers matter to the pricing flow; the projection stamps every read
// row with the hotel so queries never have to walk the chain.
type Hotel struct {
	ID   uuid.UUID
	Name string
}

// RoomType belongs to exactly one Hotel and owns its Rates.
type RoomType struct {
	ID      uuid.UUID
	HotelID uuid.UUID
	Name    string
}
