package rpc

import (
	"fmt"
	"net/rpc"
	"time"

	"cps2/hw/input"
)

type Client struct {
	client *rpc.Client
}

func NewClient(addr string) (*Client, error) {
	var (
		client *rpc.Client
		err    error
	)
	const maxretries = 5
	for i := range maxretries {
		if client, err = rpc.Dial("tcp", addr); err == nil {
			break
		}
		modRPC.WarnZ("dial tcp failed").Error("err", err).Int("retry", i).End()
		time.Sleep(250 * time.Millisecond)
	}

	if client == nil {
		return nil, fmt.Errorf("dial failed max retries: %v", err)
	}

	return &Client{client: client}, nil
}

func (c *Client) Close() error {
	modRPC.DebugZ("closing rpc client").End()
	return c.client.Close()
}

func (c *Client) Reset() error              { return call(c.client, "emu.Reset", nil) }
func (c *Client) Restart() error            { return call(c.client, "emu.Restart", nil) }
func (c *Client) SetPause(pause bool) error { return call(c.client, "emu.SetPause", pause) }
func (c *Client) Stop() error               { return call(c.client, "emu.Stop", nil) }

func (c *Client) Press(b input.Button) error   { return call(c.client, "emu.Press", b) }
func (c *Client) Release(b input.Button) error { return call(c.client, "emu.Release", b) }

func (c *Client) FrameNumber() (int, error) {
	return request[int](c.client, "emu.FrameNumber", nil)
}

func (c *Client) Snapshot() ([]byte, error) {
	return request[[]byte](c.client, "emu.Snapshot", nil)
}

func call(client *rpc.Client, funcname string, args any) error {
	_, err := request[struct{}](client, funcname, args)
	return err
}

func request[T any](client *rpc.Client, funcname string, args any) (T, error) {
	if args == nil {
		args = &struct{}{}
	}
	var reply T
	if err := client.Call(funcname, args, &reply); err != nil {
		modRPC.WarnZ("RPC call failed").String("func", funcname).Error("err", err).End()
		return reply, fmt.Errorf("%s: %w", funcname, err)
	}
	return reply, nil
}
