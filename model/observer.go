package model

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/golang/glog"
)

const obsChanCap = 1000

// SeqObserver streams Seq values decoded from an io.Reader.
type SeqObserver struct {
	reader io.Reader

	mu  sync.Mutex
	err error
}

// NewSeqObserver creates a new SeqObserver. The data is read as a stream of JSON objects
// accessed from an io.Reader. Each JSON object must be separated by a newline.
//
// Example to create an SeqObserver from a file (error handling ignored for brevity).
// The data must be a stream of JSON-encoded Seq values.
//
//	r, _ = os.Open(fn)              // Open file.
//	obs, _ = NewSeqObserver(r)      // Create observer that reads from file.
//	c, _ = obs.ObsChan()            // Get channel.
//	for seq := range c { ... }
//	_ = obs.Err()                   // Decoding error, if any.
//	_ = obs.Close()                 // Closes the underlying file reader.
func NewSeqObserver(reader io.Reader) (*SeqObserver, error) {
	so := &SeqObserver{
		reader: reader,
	}
	return so, nil
}

// ObsChan returns a channel of sequences.
// The sequence ends when the channel closes.
func (so *SeqObserver) ObsChan() (<-chan Seq, error) {
	obsChan := make(chan Seq, obsChanCap)
	go func() {
		defer close(obsChan)
		dec := json.NewDecoder(so.reader)
		for n := 0; ; n++ {
			var v Seq
			err := dec.Decode(&v)
			if err == io.EOF {
				return
			}
			if err != nil {
				glog.Warningf("seq observer stopped at record %d: %s", n, err)
				so.setErr(err)
				return
			}
			obsChan <- v
		}
	}()
	return obsChan, nil
}

// Err returns the decoding error that ended the stream, if any.
// Only meaningful after the channel is closed.
func (so *SeqObserver) Err() error {
	so.mu.Lock()
	defer so.mu.Unlock()
	return so.err
}

func (so *SeqObserver) setErr(err error) {
	so.mu.Lock()
	so.err = err
	so.mu.Unlock()
}

// Close underlying reader if reader implements the io.Closer interface.
func (so *SeqObserver) Close() error {

	c, ok := so.reader.(io.Closer)
	if ok {
		return c.Close()
	}
	return nil
}

// ReadSeqs drains the observer into a slice.
func ReadSeqs(r io.Reader) ([]Seq, error) {

	so, err := NewSeqObserver(r)
	if err != nil {
		return nil, err
	}
	c, err := so.ObsChan()
	if err != nil {
		return nil, err
	}
	var seqs []Seq
	for seq := range c {
		seqs = append(seqs, seq)
	}
	return seqs, so.Err()
}

// WriteSeqs writes sequences as newline-separated JSON objects.
func WriteSeqs(w io.Writer, seqs []Seq) error {

	enc := json.NewEncoder(w)
	for _, s := range seqs {
		if err := enc.Encode(s); err != nil {
			return err
		}
	}
	return nil
}
