package model

import (
	"strings"
)

type Position string

const (
	POS_UNKNOWN Position = "UNK"

	POS_GK Position = "GK"

	POS_SW  Position = "SW"
	POS_CB  Position = "CB"
	POS_LCB Position = "LCB"
	POS_RCB Position = "RCB"
	POS_LB  Position = "LB"
	POS_RB  Position = "RB"
	POS_LWB Position = "LWB"
	POS_RWB Position = "RWB"

	POS_CDM  Position = "CDM"
	POS_LDM  Position = "LDM"
	POS_RDM  Position = "RDM"
	POS_CM   Position = "CM"
	POS_LCM  Position = "LCM"
	POS_RCM  Position = "RCM"
	POS_LM   Position = "LM"
	POS_RM   Position = "RM"
	POS_CAM  Position = "CAM"
	POS_LAM  Position = "LAM"
	POS_RAM  Position = "RAM"

	POS_CF Position = "CF"
	POS_LF Position = "LF"
	POS_RF Position = "RF"
	POS_ST Position = "ST"
	POS_LS Position = "LS"
	POS_RS Position = "RS"
	POS_LW Position = "LW"
	POS_RW Position = "RW"

	// Squad slots rather than positions on the pitch.
	POS_SUB Position = "SUB"
	POS_RES Position = "RES"
)

// Line is the part of the pitch a position belongs to.
type Line string

const (
	LINE_UNKNOWN Line = "UNK"
	LINE_GK      Line = "GK"
	LINE_DEF     Line = "DEF"
	LINE_MID     Line = "MID"
	LINE_FWD     Line = "FWD"
	LINE_BENCH   Line = "BENCH"
)

var positions = map[Position]Line{
	POS_GK:  LINE_GK,
	POS_SW:  LINE_DEF,
	POS_CB:  LINE_DEF,
	POS_LCB: LINE_DEF,
	POS_RCB: LINE_DEF,
	POS_LB:  LINE_DEF,
	POS_RB:  LINE_DEF,
	POS_LWB: LINE_DEF,
	POS_RWB: LINE_DEF,
	POS_CDM: LINE_MID,
	POS_LDM: LINE_MID,
	POS_RDM: LINE_MID,
	POS_CM:  LINE_MID,
	POS_LCM: LINE_MID,
	POS_RCM: LINE_MID,
	POS_LM:  LINE_MID,
	POS_RM:  LINE_MID,
	POS_CAM: LINE_MID,
	POS_LAM: LINE_MID,
	POS_RAM: LINE_MID,
	POS_CF:  LINE_FWD,
	POS_LF:  LINE_FWD,
	POS_RF:  LINE_FWD,
	POS_ST:  LINE_FWD,
	POS_LS:  LINE_FWD,
	POS_RS:  LINE_FWD,
	POS_LW:  LINE_FWD,
	POS_RW:  LINE_FWD,
	POS_SUB: LINE_BENCH,
	POS_RES: LINE_BENCH,
}

// ParsePosition parses the position column of the dataset. The raw export
// wraps the position in HTML, e.g. "<span class="pos pos28">SUB", so anything
// up to the last '>' is dropped.
func ParsePosition(pos string) Position {
	if i := strings.LastIndex(pos, ">"); i >= 0 {
		pos = pos[i+1:]
	}
	p := Position(strings.ToUpper(strings.TrimSpace(pos)))
	if _, found := positions[p]; !found {
		return POS_UNKNOWN
	}
	return p
}

func (p Position) Line() Line {
	l, found := positions[p]
	if !found {
		return LINE_UNKNOWN
	}
	return l
}
