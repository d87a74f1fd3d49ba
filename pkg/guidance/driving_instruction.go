package guidance

import (
	"errors"
	"fmt"
	"math"

	"github.com/lintang-b-s/roadnav/pkg/datastructure"
	"github.com/lintang-b-s/roadnav/pkg/geo"
)

var ErrEmptyPath = errors.New("path is empty")

type RoadGraph interface {
	HasNode(id string) bool
	Edge(id string) (datastructure.Edge, bool)
	Degree(nodeID string) int
}

// pathSegment one hop of the route. connector hops (to or from a clicked location) have no edge.
type pathSegment struct {
	fromNode string
	toNode   string
	from     datastructure.Coordinate
	to       datastructure.Coordinate
	edgeID   string
	name     string
	dist     float64
}

func (s pathSegment) isConnector() bool {
	return s.edgeID == ""
}

type InstructionsFromEdges struct {
	g                     RoadGraph
	ways                  []*Instruction
	prevSegment           *pathSegment
	prevInstruction       *Instruction
	prevOrientation       float64 // orientasi prevSegment, radian
	doublePrevOrientation float64
	doublePrevStreetName  string
	travelled             float64
}

func NewInstructionsFromEdges(g RoadGraph) *InstructionsFromEdges {
	return &InstructionsFromEdges{
		g:    g,
		ways: make([]*Instruction, 0),
	}
}

/*
GetDrivingDirections turn by turn directions of a found route.

consecutive segments of the same street are merged into one instruction, a new instruction is
added where the route leaves the street or bends by more than a slight turn.
*/
func (ife *InstructionsFromEdges) GetDrivingDirections(path datastructure.PathResult) ([]DrivingDirection, error) {
	segments, err := ife.pathSegments(path)
	if err != nil {
		return nil, err
	}

	for i := range segments {
		ife.addInstructionFromSegment(segments[i], segments[i:])
	}
	ife.finish(path.Coordinates[len(path.Coordinates)-1])

	directions := make([]DrivingDirection, 0, len(ife.ways))
	for _, ins := range ife.ways {
		directions = append(directions, NewDrivingDirection(*ins))
	}
	return directions, nil
}

func (ife *InstructionsFromEdges) pathSegments(path datastructure.PathResult) ([]pathSegment, error) {
	if !path.Found || len(path.NodeIDs) < 2 || len(path.Coordinates) != len(path.NodeIDs) {
		return nil, ErrEmptyPath
	}

	segments := make([]pathSegment, 0, len(path.NodeIDs)-1)
	k := 0
	for i := 0; i+1 < len(path.NodeIDs); i++ {
		seg := pathSegment{
			fromNode: path.NodeIDs[i],
			toNode:   path.NodeIDs[i+1],
			from:     path.Coordinates[i],
			to:       path.Coordinates[i+1],
		}
		if ife.g.HasNode(seg.fromNode) && ife.g.HasNode(seg.toNode) {
			if k >= len(path.EdgeIDs) {
				return nil, fmt.Errorf("no edge between %s and %s: %w", seg.fromNode, seg.toNode,
					datastructure.ErrEdgeNotFound)
			}
			edge, ok := ife.g.Edge(path.EdgeIDs[k])
			if !ok || !edge.Connects(seg.fromNode, seg.toNode) {
				return nil, fmt.Errorf("edge %s between %s and %s: %w", path.EdgeIDs[k], seg.fromNode,
					seg.toNode, datastructure.ErrEdgeNotFound)
			}
			k++
			seg.edgeID = edge.ID
			seg.name = edge.Name
			seg.dist = edge.Distance
		} else {
			seg.dist = geo.CalculateHaversineDistance(seg.from.Lat, seg.from.Lon, seg.to.Lat, seg.to.Lon)
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

// firstStreetName name of the first stored edge in rest, the start instruction is named after it.
func firstStreetName(rest []pathSegment) string {
	for _, seg := range rest {
		if !seg.isConnector() {
			return seg.name
		}
	}
	return ""
}

func (ife *InstructionsFromEdges) addInstructionFromSegment(seg pathSegment, rest []pathSegment) {
	orientation := calcOrientation(seg.from.Lat, seg.from.Lon, seg.to.Lat, seg.to.Lon)

	switch {
	case ife.prevInstruction == nil:
		// start point dari shortest path
		ins := NewInstruction(START, firstStreetName(rest), seg.from, 0)
		ins.Heading = geo.BearingTo(seg.from.Lat, seg.from.Lon, seg.to.Lat, seg.to.Lon)
		ife.appendInstruction(&ins)

	case seg.isConnector() || ife.prevSegment.isConnector():
		// belokan dari/ke lokasi klik tidak diberi instruction
		if ife.prevInstruction.Sign == START && isEmpty(ife.prevInstruction.Name) {
			ife.prevInstruction.Name = seg.name
		}

	default:
		sign := ife.GetTurnSign(seg)
		if sign != IGNORE {
			isUTurn, uTurnType := ife.CheckUTurn(sign, seg)
			if isUTurn {
				ife.prevInstruction.Sign = uTurnType
				_, ife.prevInstruction.TurnType = getDirectionDescription(uTurnType)
				ife.prevInstruction.Name = seg.name
			} else {
				ins := NewInstruction(sign, seg.name, seg.from, ife.travelled)
				ife.doublePrevOrientation = ife.prevOrientation
				ife.doublePrevStreetName = ife.prevSegment.name
				ife.appendInstruction(&ins)
			}
		}
	}

	ife.prevInstruction.Distance += seg.dist
	if !seg.isConnector() {
		ife.prevInstruction.EdgeIDs = append(ife.prevInstruction.EdgeIDs, seg.edgeID)
	}
	ife.travelled += seg.dist
	ife.prevOrientation = orientation
	ife.prevSegment = &seg
}

func (ife *InstructionsFromEdges) appendInstruction(ins *Instruction) {
	ife.prevInstruction = ins
	ife.ways = append(ife.ways, ins)
}

/*
GetTurnSign. turn sign antara prevSegment dan seg berdasarkan selisih bearing. Misalkan:

prevNode----prevSegment----baseNode
							|
							|
						   seg
							|
							|
						 adjNode

tanpa jalan alternatif di baseNode, hanya belokan yang lebih tajam dari slight turn yang diberi
instruction. dengan jalan alternatif, instruction diberikan saat route pindah ke street lain.
*/ // nolint: gofmt
func (ife *InstructionsFromEdges) GetTurnSign(seg pathSegment) int {
	sign := getTurnDirection(seg.from.Lat, seg.from.Lon, seg.to.Lat, seg.to.Lon, ife.prevOrientation)
	sameStreet := isSameName(seg.name, ife.prevSegment.name)

	// selain edge masuk & edge keluar
	alternativeTurns := ife.g.Degree(seg.fromNode) - 2
	if alternativeTurns <= 0 {
		if math.Abs(float64(sign)) > 1 {
			return sign
		}
		return IGNORE
	}

	if math.Abs(float64(sign)) > 1 {
		if sameStreet {
			return IGNORE
		}
		return sign
	}

	if sameStreet {
		return IGNORE
	}
	if sign == CONTINUE_ON_STREET {
		return CONTINUE_ON_STREET
	}
	if sign < 0 {
		return KEEP_LEFT
	}
	return KEEP_RIGHT
}

/*
CheckUTurn. check jika seg adalah U-turn. Misalkan:

A --doublePrevEdge-->B
				    |
					|
				PrevEdge
					|
					|
					|
D <------seg--------C

jika dari A->B belok kanan, dan dari B->C belok kanan, dan delta bearing antara A->B dan C->D mendekati 180 derajat, maka bisa dianggap U-turn
*/ // nolint: gofmt
func (ife *InstructionsFromEdges) CheckUTurn(sign int, seg pathSegment) (bool, int) {
	prevSign := ife.prevInstruction.Sign
	if ife.doublePrevOrientation == 0 || prevSign == START || (sign > 0) != (prevSign > 0) ||
		!isTurn(sign) || !isTurn(prevSign) || !isSameName(ife.doublePrevStreetName, seg.name) {
		return false, U_TURN_UNKNOWN
	}

	currentOrientation := calcOrientation(seg.from.Lat, seg.from.Lon, seg.to.Lat, seg.to.Lon)
	diff := math.Abs(ife.doublePrevOrientation - currentOrientation)
	diffAngle := diff * (180 / math.Pi)
	if diffAngle > 155 && diffAngle < 205 {
		if sign < 0 {
			return true, U_TURN_LEFT
		}
		return true, U_TURN_RIGHT
	}
	return false, U_TURN_UNKNOWN
}

// finish tambah final instruction.
func (ife *InstructionsFromEdges) finish(end datastructure.Coordinate) {
	name := ""
	if ife.prevSegment != nil {
		name = ife.prevSegment.name
	}
	ins := NewInstruction(FINISH, name, end, ife.travelled)
	ife.ways = append(ife.ways, &ins)
}
