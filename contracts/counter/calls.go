package counter

type Increment struct{}

type Decrement struct{}

type Reset struct{}
