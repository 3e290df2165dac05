// Package w3g decodes Warcraft III "Island Defense" replay (.w3g) files
// into a structured tree of header, player, lobby and replay-block
// records.
//
// Basic usage:
//
//	data, err := os.ReadFile("my_replay.w3g")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	replay, err := w3g.Decode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Game: %s\n", replay.GameName)
//	fmt.Printf("Duration: %s\n", replay.Header.Duration())
package w3g
