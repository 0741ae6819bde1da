package model

import (
	"time"
)

type WithID[T comparable] interface {
	ID() T
}

type WithOwner interface {
	Owner() OwnerID
}

type WithLifecycle interface {
	CreatedAt() time.Time
}
