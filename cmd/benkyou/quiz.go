package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/unicode/norm"

	"github.com/conorfennell/benkyou/internal/config"
	"github.com/conorfennell/benkyou/internal/deck"
	"github.com/conorfennell/benkyou/internal/domain"
	"github.com/conorfennell/benkyou/internal/session"
)

const quitCommand = ":q"

// quiz runs the question/answer loop of a study session on a terminal.
type quiz struct {
	sess *session.Session
	mode string
	in   *bufio.Scanner
	out  io.Writer
	coin func() bool // picks the question side in mixed mode
}

// run presents cards until nothing is ready, the learner quits or input
// ends. An unanswered card stays current and is saved as is.
func (q *quiz) run() error {
	for {
		it, ok := q.sess.Next()
		if !ok {
			q.finish()
			return nil
		}

		japanese := q.asksJapanese()
		question := it.Answer
		if japanese {
			question = it.Prompt
		}
		fmt.Fprintf(q.out, "\n[level %d] %s\n> ", it.Level, question)

		if !q.in.Scan() {
			fmt.Fprintln(q.out)
			return q.in.Err()
		}
		input := strings.TrimSpace(q.in.Text())
		if input == quitCommand {
			return nil
		}

		correct := checkAnswer(it.Vocab, japanese, input)
		opt, err := q.sess.Grade(correct)
		if err != nil {
			return err
		}
		q.feedback(it, japanese, correct)
		fmt.Fprintf(q.out, "%s: next review %s\n", opt.Rating,
			humanize.RelTime(it.LastReviewed, it.DueAt(), "from now", "ago"))
	}
}

func (q *quiz) asksJapanese() bool {
	switch q.mode {
	case config.ModeJapToEng:
		return true
	case config.ModeEngToJap:
		return false
	default:
		return q.coin()
	}
}

func (q *quiz) feedback(it *deck.Item, japanese, correct bool) {
	answer := it.Answer
	if !japanese {
		answer = it.Prompt
		if it.Reading != "" {
			answer = fmt.Sprintf("%s (%s)", it.Prompt, it.Reading)
		}
	}
	if correct {
		fmt.Fprintf(q.out, "Correct! The answer is %s\n", answer)
		return
	}
	fmt.Fprintf(q.out, "Incorrect. Correct answer: %s\n", answer)
}

func (q *quiz) finish() {
	if q.sess.Finished() {
		fmt.Fprintln(q.out, "Deck finished!")
		return
	}
	s := q.sess.Summary()
	next := ""
	if !s.NextDue.IsZero() {
		next = ", next one " + humanize.Time(s.NextDue)
	}
	fmt.Fprintf(q.out, "Nothing is due right now: %d cards cooling down%s. Come back later.\n",
		q.sess.Pending(), next)
}

// checkAnswer grades typed input. An English answer matches when the input
// is contained in it, ignoring case. A Japanese answer must equal the word
// or its reading after NFKC normalization, so full-width and half-width
// forms compare equal. Empty input never matches.
func checkAnswer(v domain.Vocab, questionIsJapanese bool, input string) bool {
	input = norm.NFKC.String(strings.TrimSpace(input))
	if input == "" {
		return false
	}
	if questionIsJapanese {
		return strings.Contains(strings.ToLower(norm.NFKC.String(v.Answer)), strings.ToLower(input))
	}
	if input == norm.NFKC.String(strings.TrimSpace(v.Prompt)) {
		return true
	}
	return v.Reading != "" && input == norm.NFKC.String(strings.TrimSpace(v.Reading))
}
