package blockchain

type EventListener interface {
	OnRead(method string)
	OnBlockScanned(visitedEvents uint64)
	OnBlockSkipped()
}

type SelectiveListener struct {
	OnReadCb         func(method string)
	OnBlockScannedCb func(visitedEvents uint64)
	OnBlockSkippedCb func()
}

func (l *SelectiveListener) OnRead(method string) {
	if l.OnReadCb != nil {
		l.OnReadCb(method)
	}
}

func (l *SelectiveListener) OnBlockScanned(visitedEvents uint64) {
	if l.OnBlockScannedCb != nil {
		l.OnBlockScannedCb(visitedEvents)
	}
}

func (l *SelectiveListener) OnBlockSkipped() {
	if l.OnBlockSkippedCb != nil {
		l.OnBlockSkippedCb()
	}
}
