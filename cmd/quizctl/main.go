// Command quizctl extracts multiple-choice questions from exam material on
// the command line.
//
//	quizctl extract --file exam.txt [--html] [--output json|yaml]
//	quizctl import  --file exam.txt --source "2023 spring" [--html]
//
// Configuration is read the same way as the server (CONFIG_PATH, then env).
// Exit codes: 0 = success, 1 = error.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/heartmarshall/quizbank-backend/internal/app"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "quizctl:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "quizctl",
		Usage:   "extract multiple-choice questions from exam text",
		Version: app.BuildVersion(),
		Commands: []*cli.Command{
			{
				Name:  "extract",
				Usage: "print the questions found in a file without storing them",
				Flags: []cli.Flag{
					fileFlag(),
					htmlFlag(),
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "output format: json or yaml",
						Value:   formatYAML,
					},
				},
				Action: extractAction,
			},
			{
				Name:  "import",
				Usage: "extract the questions in a file and store them",
				Flags: []cli.Flag{
					fileFlag(),
					htmlFlag(),
					&cli.StringFlag{
						Name:  "source",
						Usage: "label stored on every question (defaults to the file name)",
					},
				},
				Action: importAction,
			},
		},
	}
}

func fileFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Usage:    "read material from `PATH` (- for stdin)",
		Required: true,
	}
}

func htmlFlag() *cli.BoolFlag {
	return &cli.BoolFlag{Name: "html", Usage: "treat the input as HTML"}
}
