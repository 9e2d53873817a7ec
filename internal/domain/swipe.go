package domain

import "time"

type SwipeDirection string

const (
	SwipeLeft  SwipeDirection = "left"
	SwipeRight SwipeDirection = "right"
)

// Swipe captures one user's directional decision on another. Append-only.
type Swipe struct {
	ID        int            `json:"id" db:"id"`
	SwiperID  int            `json:"swiper_id" db:"swiper_id"`
	SwipedID  int            `json:"swiped_id" db:"swiped_id"`
	Direction SwipeDirection `json:"direction" db:"direction"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}

func (s *Swipe) IsRight() bool {
	return s.Direction == SwipeRight
}
