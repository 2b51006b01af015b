// Package main tails an order's normalized delivery events over WebSocket.
//
//	SSP_API_KEY=... go run ./scripts/ws_client.go ord-123
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"

	"github.com/gorilla/websocket"
)

type wsMessage struct {
	Type  string          `json:"type"`
	Event json.RawMessage `json:"event,omitempty"`
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: ws_client <order-id>")
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	u := url.URL{Scheme: "ws", Host: "localhost:" + port, Path: "/orders/" + url.PathEscape(os.Args[1]) + "/events/ws"}

	hdr := http.Header{}
	hdr.Set("X-API-Key", os.Getenv("SSP_API_KEY"))
	conn, resp, err := websocket.DefaultDialer.Dial(u.String(), hdr)
	if err != nil {
		if resp != nil {
			log.Fatalf("dial %s: %v (HTTP %d)", u.String(), err, resp.StatusCode)
		}
		log.Fatalf("dial %s: %v", u.String(), err)
	}
	defer func() { _ = conn.Close() }()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = conn.Close()
	}()

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			log.Printf("connection closed: %v", err)
			return
		}
		switch msg.Type {
		case "connection_ack":
			fmt.Println("subscribed to", os.Args[1])
		case "event":
			fmt.Println(string(msg.Event))
		}
	}
}
