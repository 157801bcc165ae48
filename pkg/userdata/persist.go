package userdata

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/adrg/xdg"
)

// LoadFromDefaultPath loads user statistics from the standard XDG data
// directory (~/.local/share/akaza on most Linux setups), creating the
// directory if it doesn't already exist.
func LoadFromDefaultPath() (*UserData, error) {
	unigramPath, err := xdg.DataFile("akaza/unigram.v1.txt")
	if err != nil {
		return nil, err
	}
	bigramPath, err := xdg.DataFile("akaza/bigram.v1.txt")
	if err != nil {
		return nil, err
	}
	return Load(unigramPath, bigramPath), nil
}

// PersistTask periodically flushes a UserData to disk in the background:
// a ticker drives periodic flushes, a final flush runs on Stop.
type PersistTask struct {
	userData *UserData
	ticker   *time.Ticker
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	OnError  func(error)
}

// StartPersistTask starts a PersistTask flushing userData every interval.
func StartPersistTask(userData *UserData, interval time.Duration) *PersistTask {
	ctx, cancel := context.WithCancel(context.Background())
	p := &PersistTask{
		userData: userData,
		ticker:   time.NewTicker(interval),
		ctx:      ctx,
		cancel:   cancel,
	}
	p.wg.Add(1)
	go p.loop()
	return p
}

func (p *PersistTask) loop() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ticker.C:
			if err := p.userData.Flush(); err != nil {
				p.reportError(err)
			}
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *PersistTask) reportError(err error) {
	if p.OnError != nil {
		p.OnError(err)
		return
	}
	log.Printf("userdata: flush failed: %v", err)
}

// Stop halts the background flush loop and performs one last flush.
func (p *PersistTask) Stop() error {
	p.ticker.Stop()
	p.cancel()
	p.wg.Wait()
	return p.userData.Flush()
}
