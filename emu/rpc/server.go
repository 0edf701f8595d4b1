package rpc

import (
	"net"
	"net/rpc"

	"cps2/emu/log"
	"cps2/hw/input"
)

var modRPC = log.NewModule("rpc")

// Emu is the part of the emulator controllable remotely.
type Emu interface {
	Reset()
	Restart()
	SetPause(pause bool)
	Stop()

	Press(b input.Button)
	Release(b input.Button)
	FrameNumber() int
	Snapshot() ([]byte, error)
}

type emuProxy struct {
	emu Emu
}

func (ep *emuProxy) Reset(_, _ *struct{}) error             { ep.emu.Reset(); return nil }
func (ep *emuProxy) Restart(_, _ *struct{}) error           { ep.emu.Restart(); return nil }
func (ep *emuProxy) SetPause(pause bool, _ *struct{}) error { ep.emu.SetPause(pause); return nil }
func (ep *emuProxy) Stop(_ *struct{}, _ *struct{}) error    { ep.emu.Stop(); return nil }

func (ep *emuProxy) Press(b input.Button, _ *struct{}) error   { ep.emu.Press(b); return nil }
func (ep *emuProxy) Release(b input.Button, _ *struct{}) error { ep.emu.Release(b); return nil }

func (ep *emuProxy) FrameNumber(_ *struct{}, reply *int) error {
	*reply = ep.emu.FrameNumber()
	return nil
}

func (ep *emuProxy) Snapshot(_ *struct{}, reply *[]byte) error {
	buf, err := ep.emu.Snapshot()
	*reply = buf
	return err
}

func (ep *emuProxy) IsReady(_ *struct{}, reply *bool) error {
	*reply = true
	return nil
}

// Server exposes an Emu over TCP with net/rpc.
type Server struct {
	l net.Listener
}

// NewServer starts serving emu on addr ("host:port", port 0 picks a free
// one).
func NewServer(addr string, emu Emu) (*Server, error) {
	srv := rpc.NewServer()
	if err := srv.RegisterName("emu", &emuProxy{emu: emu}); err != nil {
		panic("failed to register RPC server: " + err.Error())
	}
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	modRPC.InfoZ("rpc server listening").String("addr", l.Addr().String()).End()
	go srv.Accept(l)
	return &Server{l: l}, nil
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string { return s.l.Addr().String() }

func (s *Server) Close() error { return s.l.Close() }
