package model

// Agreement is the payer agreement data a slip is issued against.
// All values are non-negative. Their printed widths are fixed by the free field
// layout: 4 digits for the branch, 5 for the member code and 7 for the sequence.
type Agreement struct {
	Branch     int `json:"branch"`
	MemberCode int `json:"member_code"`
	Sequence   int `json:"sequence"`
}
