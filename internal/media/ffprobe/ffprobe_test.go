package ffprobe

import "testing"

func TestDecodeAndHelpers(t *testing.T) {
	payload := []byte(`{
		"streams": [
			{"index": 0, "codec_type": "video", "codec_name": "h264", "width": 1920, "height": 1080, "avg_frame_rate": "30000/1001"},
			{"index": 1, "codec_type": "audio", "codec_name": "aac"}
		],
		"format": {"filename": "clip.mp4", "duration": "10.5", "size": "204800", "format_name": "mov,mp4"}
	}`)

	result, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	stream, ok := result.VideoStream()
	if !ok || stream.CodecName != "h264" {
		t.Fatalf("unexpected video stream: %+v ok=%v", stream, ok)
	}
	if result.Width() != 1920 || result.Height() != 1080 {
		t.Fatalf("unexpected dimensions: %dx%d", result.Width(), result.Height())
	}
	if rate := result.FrameRate(); rate < 29.9 || rate > 30.0 {
		t.Fatalf("unexpected frame rate: %v", rate)
	}
	if result.DurationSeconds() != 10.5 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 204800 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
}

func TestHelpersWithoutVideoStream(t *testing.T) {
	result := Result{
		Streams: []Stream{{CodecType: "audio"}},
		Format:  Format{Duration: "bad", Size: "-1"},
	}
	if _, ok := result.VideoStream(); ok {
		t.Fatal("expected no video stream")
	}
	if result.Width() != 0 || result.Height() != 0 || result.FrameRate() != 0 {
		t.Fatalf("expected zero dimensions, got %dx%d @%v", result.Width(), result.Height(), result.FrameRate())
	}
	if result.DurationSeconds() != 0 {
		t.Fatalf("expected zero duration, got %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected zero size, got %d", result.SizeBytes())
	}
}

func TestDecodeRejectsMalformedPayload(t *testing.T) {
	if _, err := Decode([]byte("not json")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFrameRateFraction(t *testing.T) {
	result := Result{Streams: []Stream{{CodecType: "video", AvgFrameRate: "24/1"}}}
	if result.FrameRate() != 24 {
		t.Fatalf("unexpected frame rate: %v", result.FrameRate())
	}
	result.Streams[0].AvgFrameRate = "0/0"
	if result.FrameRate() != 0 {
		t.Fatalf("expected zero for degenerate fraction, got %v", result.FrameRate())
	}
}
