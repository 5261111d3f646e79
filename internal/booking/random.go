package booking

import (
	"fmt"
	"math/rand/v2"
)

// Operational assignment pools. Gate letters skip I to avoid confusion
// with the digit 1 on printed passes.
var (
	aircraftPool = []string{"Nimbus2000"}
	gateLetters  = "ABCDEFGHJK"
	seatLetters  = "ABCDEF"
)

func randomAircraft() string {
	return aircraftPool[rand.IntN(len(aircraftPool))]
}

func randomLounge() string {
	return fmt.Sprintf("SALA-%d", 1+rand.IntN(15))
}

func randomGate() string {
	return fmt.Sprintf("P-%d%c", 1+rand.IntN(40), gateLetters[rand.IntN(len(gateLetters))])
}

func randomSeat() string {
	return fmt.Sprintf("%d%c", 1+rand.IntN(35), seatLetters[rand.IntN(len(seatLetters))])
}
