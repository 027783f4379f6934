package jetstream

import "time"

type Clock interface {
	Now() time.Time
}

func WithClock(clock Clock) StateStoreOption {
	return func(store *StateStore) {
		store.clock = clock
	}
}

type defaultClock struct {
}

func (defaultClock) Now() time.Time {
	return time.Now()
}
