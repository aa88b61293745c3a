package app

import (
	"log"
	"time"

	"gocv.io/x/gocv"
)

// runPipeline is the main loop. Each tick reads one camera frame, keeps a
// JPEG preview of it, detects hands and publishes the count. Every frame is
// classified on its own; nothing is carried between ticks. A frame that
// cannot be read or detected publishes an empty result so the counter hides.
func (a *App) runPipeline(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(time.Second / time.Duration(a.config.FPS))
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}
			a.tick()
		}
	}
}

func (a *App) tick() {
	frame, err := a.camera.ReadFrame()
	if err != nil {
		log.Printf("Error reading frame: %v", err)
		a.Process(nil)
		return
	}
	defer frame.Close()

	a.storePreview(frame)

	d := a.Detector()
	if d == nil {
		a.Process(nil)
		return
	}

	hands, err := d.Detect(frame)
	if err != nil {
		log.Printf("Error detecting hands: %v", err)
		a.Process(nil)
		return
	}

	a.Process(hands)
}

func (a *App) storePreview(frame *gocv.Mat) {
	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		log.Printf("Error encoding preview: %v", err)
		return
	}
	defer buf.Close()

	jpeg := make([]byte, buf.Len())
	copy(jpeg, buf.GetBytes())

	a.subMu.Lock()
	a.lastJPEG = jpeg
	a.subMu.Unlock()
}
