package main

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

const writeWait = 5 * time.Second

// Incoming is one decoded server message: a frame, an envelope or a read error
type Incoming struct {
	Frame *Frame
	Env   *InEnvelope
	Err   error
}

// Conn wraps the websocket with a single reader goroutine and a locked writer
type Conn struct {
	ws *websocket.Conn
	mu sync.Mutex
	In chan Incoming
}

func Dial(url string) (*Conn, error) {
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	c := &Conn{ws: ws, In: make(chan Incoming, 64)}
	go c.readLoop()
	return c, nil
}

func (c *Conn) readLoop() {
	defer close(c.In)
	for {
		msgType, data, err := c.ws.ReadMessage()
		if err != nil {
			c.In <- Incoming{Err: err}
			return
		}
		in, ok := decode(msgType, data)
		if !ok {
			continue
		}
		c.In <- in
	}
}

// decode turns a raw websocket message into an Incoming
func decode(msgType int, data []byte) (Incoming, bool) {
	if msgType == websocket.BinaryMessage {
		var f Frame
		if err := msgpack.Unmarshal(data, &f); err != nil {
			return Incoming{}, false
		}
		return Incoming{Frame: &f}, true
	}
	var env InEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Incoming{}, false
	}
	return Incoming{Env: &env}, true
}

// Send writes a JSON envelope
func (c *Conn) Send(t string, data interface{}) error {
	b, err := json.Marshal(Envelope{T: t, Data: data})
	if err != nil {
		return err
	}
	return c.write(websocket.TextMessage, b)
}

// SendInput writes a two byte binary input packet
func (c *Conn) SendInput(flags byte) error {
	return c.write(websocket.BinaryMessage, []byte{inputTag, flags})
}

func (c *Conn) write(msgType int, b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(msgType, b)
}

func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.ws.Close()
}
