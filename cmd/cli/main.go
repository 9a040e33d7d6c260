package main

import (
	"bufio"
	"io"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/macanangkasa/klondike"
	"github.com/macanangkasa/klondike/deck"
)

func main() {
	if err := play(newShuffledGame(), os.Stdin, os.Stdout); err != nil {
		log.Fatal(err.Error())
	}
}

func newShuffledGame() *klondike.Game {
	return klondike.NewGame(klondike.GameOpts{
		ID:  "cli",
		Rng: rand.New(rand.NewSource(rand.Int63())),
	})
}

// play runs the interactive loop until the player quits, wins or the
// input runs out.
func play(game *klondike.Game, in io.Reader, out io.Writer) error {
	reader := bufio.NewScanner(in)

	sendText(out, welcomeText)
	sendText(out, buildBoardDisplayText(game))
	sendText(out, promptText)

	for reader.Scan() {
		fields := strings.Fields(reader.Text())
		if len(fields) == 0 {
			sendText(out, promptText)
			continue
		}

		redraw := true
		switch strings.ToLower(fields[0]) {
		case "d", "draw":
			if !game.Draw() {
				sendText(out, rejectedMoveText)
			}

		case "f", "foundation":
			card, ok := parseCardArg(out, fields)
			if !ok {
				redraw = false
				break
			}
			if !game.AutoMoveToFoundation(card) {
				sendText(out, rejectedMoveText)
			}

		case "t", "tableau":
			card, column, ok := parseTableauArgs(out, fields)
			if !ok {
				redraw = false
				break
			}
			if !game.MoveToTableau(card, column) {
				sendText(out, rejectedMoveText)
			}

		case "r", "restart":
			game.Restart()

		case "n", "new":
			game = newShuffledGame()

		case "h", "help":
			sendText(out, helpText)
			redraw = false

		case "q", "quit":
			sendText(out, goodbyeText)
			return nil

		default:
			sendText(out, unknownCommandText)
			redraw = false
		}

		if redraw {
			sendText(out, buildBoardDisplayText(game))
		}
		if game.Won() {
			sendText(out, wonText, game.Moves(), game.Score())
			return nil
		}
		sendText(out, promptText)
	}

	return reader.Err()
}

func parseCardArg(out io.Writer, fields []string) (deck.Card, bool) {
	if len(fields) < 2 {
		sendText(out, missingCardText)
		return deck.Card{}, false
	}

	card, err := deck.ParseCard(fields[1])
	if err != nil {
		sendText(out, "%s\n", err.Error())
		return deck.Card{}, false
	}
	return card, true
}

func parseTableauArgs(out io.Writer, fields []string) (deck.Card, int, bool) {
	if len(fields) < 3 {
		sendText(out, missingColumnText)
		return deck.Card{}, 0, false
	}

	card, err := deck.ParseCard(fields[1])
	if err != nil {
		sendText(out, "%s\n", err.Error())
		return deck.Card{}, 0, false
	}

	column, err := strconv.Atoi(fields[2])
	if err != nil || column < 0 || column >= klondike.NumColumns {
		sendText(out, badColumnText, klondike.NumColumns-1)
		return deck.Card{}, 0, false
	}
	return card, column, true
}
