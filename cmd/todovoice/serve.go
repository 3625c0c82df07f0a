package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/abatilo/todovoice/internal/agent"
	"github.com/abatilo/todovoice/internal/session"
)

// serveCmd implements 'todovoice serve': the stdio tool server a
// conversational runtime connects to. The runtime owns the speech
// pipeline; we only hand it the task operations and their descriptions.
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Expose task operations to a conversational runtime over stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			st := getStore()

			sess := session.Begin(cfg.DataDir)
			if err := sess.Save(cfg.DataDir); err != nil {
				log.Printf("could not save session: %v", err)
			}
			log.Printf("session %s ready (stt=%s llm=%s tts=%s)",
				sess.SessionID, cfg.STTModel, cfg.LLMModel, cfg.TTSVoice)

			srv := agent.NewServer(agent.NewHandler(st), cfg.ServerName, cfg.Instructions, os.Stdin, os.Stdout)
			srv.OnInitialize = func() {
				// The runtime greets the user on its side; record that this
				// session has been through the handshake.
				sess.Greeted = true
				if err := sess.Save(cfg.DataDir); err != nil {
					log.Printf("could not save session: %v", err)
				}
			}

			return srv.Run(cmd.Context())
		},
	}
}
