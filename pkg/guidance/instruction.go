package guidance

import (
	"fmt"
	"strings"

	"github.com/lintang-b-s/roadnav/pkg/datastructure"
	"github.com/lintang-b-s/roadnav/pkg/util"
)

const (
	U_TURN_UNKNOWN     = -999
	U_TURN_LEFT        = -8
	KEEP_LEFT          = -7
	TURN_SHARP_LEFT    = -3
	TURN_LEFT          = -2
	TURN_SLIGHT_LEFT   = -1
	CONTINUE_ON_STREET = 0
	TURN_SLIGHT_RIGHT  = 1
	TURN_RIGHT         = 2
	TURN_SHARP_RIGHT   = 3
	FINISH             = 4
	KEEP_RIGHT         = 7
	U_TURN_RIGHT       = 8
	START              = 101
	IGNORE             = 9999999
)

// Instruction one maneuver of a route. Distance is accumulated until the next maneuver.
type Instruction struct {
	Sign               int
	Name               string
	Point              datastructure.Coordinate
	Heading            float64 // only START, bearing of the first segment in degree
	Distance           float64
	CumulativeDistance float64
	EdgeIDs            []string
	TurnType           string
}

func NewInstruction(sign int, name string, p datastructure.Coordinate, cumulativeDist float64) Instruction {
	ins := Instruction{
		Sign:               sign,
		Name:               name,
		Point:              p,
		CumulativeDistance: cumulativeDist,
		EdgeIDs:            make([]string, 0, 1),
	}
	_, ins.TurnType = getDirectionDescription(sign)
	return ins
}

func (instr *Instruction) GetTurnDescription() string {
	streetName := instr.Name

	switch instr.Sign {
	case CONTINUE_ON_STREET:
		if isEmpty(streetName) {
			return "Continue"
		}
		return fmt.Sprintf("Continue onto %s", streetName)
	case START:
		heading := instr.Heading
		if heading < 0.0 {
			heading += 360
		}
		compassDir := bearingToCompass(heading)
		if isEmpty(streetName) {
			return fmt.Sprintf("Head %s", compassDir)
		}
		return fmt.Sprintf("Head %s toward %s", compassDir, streetName)
	case FINISH:
		return "You have arrived at your destination"
	}

	dir, _ := getDirectionDescription(instr.Sign)
	if dir == "" {
		return fmt.Sprintf("unknown %d", instr.Sign)
	}
	if isEmpty(streetName) {
		return dir
	}
	switch instr.Sign {
	case KEEP_LEFT, KEEP_RIGHT:
		return fmt.Sprintf("%s to continue on %s", dir, streetName)
	default:
		return fmt.Sprintf("%s onto %s", dir, streetName)
	}
}

func bearingToCompass(bearing float64) string {
	if bearing < 22.5 {
		return "North"
	} else if bearing < 67.5 {
		return "North East"
	} else if bearing < 112.5 {
		return "East"
	} else if bearing < 157.5 {
		return "South East"
	} else if bearing < 202.5 {
		return "South"
	} else if bearing < 247.5 {
		return "South West"
	} else if bearing < 292.5 {
		return "West"
	} else if bearing < 337.5 {
		return "North West"
	}
	return "North"
}

func getDirectionDescription(sign int) (string, string) {
	switch sign {
	case U_TURN_UNKNOWN:
		return "Make U-turn", "U_TURN_UNKNOWN"
	case U_TURN_RIGHT:
		return "Make U-turn right", "U_TURN_RIGHT"
	case U_TURN_LEFT:
		return "Make U-turn left", "U_TURN_LEFT"
	case KEEP_LEFT:
		return "Keep left", "KEEP_LEFT"
	case TURN_SHARP_LEFT:
		return "Turn sharp left", "TURN_SHARP_LEFT"
	case TURN_LEFT:
		return "Turn left", "TURN_LEFT"
	case TURN_SLIGHT_LEFT:
		return "Turn slight left", "TURN_SLIGHT_LEFT"
	case CONTINUE_ON_STREET:
		return "Continue", "CONTINUE_ON_STREET"
	case TURN_SLIGHT_RIGHT:
		return "Turn slight right", "TURN_SLIGHT_RIGHT"
	case TURN_RIGHT:
		return "Turn right", "TURN_RIGHT"
	case TURN_SHARP_RIGHT:
		return "Turn sharp right", "TURN_SHARP_RIGHT"
	case KEEP_RIGHT:
		return "Keep right", "KEEP_RIGHT"
	case START:
		return "Depart", "START"
	case FINISH:
		return "Arrive", "FINISH"
	default:
		return "", ""
	}
}

func isEmpty(str string) bool {
	return strings.TrimSpace(str) == ""
}

type DrivingDirection struct {
	Instruction        string                   `json:"instruction"`
	Point              datastructure.Coordinate `json:"turn_point"`
	StreetName         string                   `json:"street_name"`
	Distance           float64                  `json:"distance"`
	CumulativeDistance float64                  `json:"cumulative_distance"`
	EdgeIDs            []string                 `json:"edge_ids"`
	TurnType           string                   `json:"turn_type"`
}

func NewDrivingDirection(ins Instruction) DrivingDirection {
	return DrivingDirection{
		Instruction:        ins.GetTurnDescription(),
		Point:              ins.Point,
		StreetName:         ins.Name,
		Distance:           util.RoundFloat(ins.Distance, 2),
		CumulativeDistance: util.RoundFloat(ins.CumulativeDistance, 2),
		EdgeIDs:            ins.EdgeIDs,
		TurnType:           ins.TurnType,
	}
}
