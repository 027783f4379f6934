package calculator

type Multiply struct {
	X int8 `json:"x"`
	Y int8 `json:"y"`
}

type Divide struct {
	X int8 `json:"x"`
	Y int8 `json:"y"`
}

type Reset struct{}
