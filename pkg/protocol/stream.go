package protocol

import (
	"context"

	"go.uber.org/zap"
)

// DecodeStream decodes every frame received from input. Frames that fail to
// decode are logged and dropped. The returned channel is closed when input is
// closed or ctx is done.
func (p *Protocol) DecodeStream(ctx context.Context, input <-chan []byte, logger *zap.Logger) <-chan Payload {
	if logger == nil {
		logger = zap.NewNop()
	}

	output := make(chan Payload, cap(input))

	go func() {
		defer close(output)
		for {
			select {
			case <-ctx.Done():
				return
			case frame, more := <-input:
				if !more {
					return
				}
				payload, err := p.Decode(frame)
				if err != nil {
					logger.Warn("dropping frame", zap.Error(err), zap.ByteString("frame", frame))
					continue
				}
				select {
				case output <- payload:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return output
}
