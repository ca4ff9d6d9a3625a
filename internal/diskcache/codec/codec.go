/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package codec converts the value types supported by the disk cache to and from raw bytes.
package codec

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"

	"google.golang.org/protobuf/proto"
)

var (
	// ErrNilValue is returned when there is nothing to encode.
	ErrNilValue = errors.New("nil value")
	// ErrEmptyInput is returned when there are no bytes to decode.
	ErrEmptyInput = errors.New("empty input")
	// ErrUnsupportedFormat is returned for an unknown bitmap format.
	ErrUnsupportedFormat = errors.New("unsupported bitmap format")
)

// BitmapFormat selects the compression used for bitmaps.
type BitmapFormat int

const (
	// FormatPNG encodes bitmaps losslessly.
	FormatPNG BitmapFormat = iota
	// FormatJPEG encodes bitmaps with the given quality.
	FormatJPEG
)

// Creator returns an empty message that a parcelable payload is decoded into.
type Creator func() proto.Message

// EncodeBytes returns the value unchanged.
func EncodeBytes(value []byte) ([]byte, error) {
	if value == nil {
		return nil, ErrNilValue
	}
	return value, nil
}

// DecodeBytes returns the data unchanged.
func DecodeBytes(data []byte) ([]byte, error) {
	if data == nil {
		return nil, ErrEmptyInput
	}
	return data, nil
}

// EncodeString returns the UTF-8 bytes of the string.
func EncodeString(value string) []byte {
	return []byte(value)
}

// DecodeString returns the string held by the data.
func DecodeString(data []byte) (string, error) {
	if data == nil {
		return "", ErrEmptyInput
	}
	return string(data), nil
}

// EncodeJSONObject marshals a JSON object.
func EncodeJSONObject(value map[string]interface{}) ([]byte, error) {
	if value == nil {
		return nil, ErrNilValue
	}
	return marshalJSON(value)
}

// DecodeJSONObject unmarshals a JSON object. Numbers decode as float64.
func DecodeJSONObject(data []byte) (map[string]interface{}, error) {
	var value map[string]interface{}
	if err := unmarshalJSON(data, &value); err != nil {
		return nil, err
	}
	if value == nil {
		return nil, fmt.Errorf("decode json object: %w", ErrNilValue)
	}
	return value, nil
}

// EncodeJSONArray marshals a JSON array.
func EncodeJSONArray(value []interface{}) ([]byte, error) {
	if value == nil {
		return nil, ErrNilValue
	}
	return marshalJSON(value)
}

// DecodeJSONArray unmarshals a JSON array. Numbers decode as float64.
func DecodeJSONArray(data []byte) ([]interface{}, error) {
	var value []interface{}
	if err := unmarshalJSON(data, &value); err != nil {
		return nil, err
	}
	if value == nil {
		return nil, fmt.Errorf("decode json array: %w", ErrNilValue)
	}
	return value, nil
}

// EncodeBitmap compresses the image as PNG.
func EncodeBitmap(img image.Image) ([]byte, error) {
	return EncodeBitmapAs(img, FormatPNG, 100)
}

// EncodeBitmapAs compresses the image in the given format. Quality only applies to JPEG.
func EncodeBitmapAs(img image.Image, format BitmapFormat, quality int) ([]byte, error) {
	if img == nil {
		return nil, ErrNilValue
	}

	var buf bytes.Buffer
	switch format {
	case FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	case FormatJPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedFormat, format)
	}
	return buf.Bytes(), nil
}

// DecodeBitmap decodes a PNG or JPEG image.
func DecodeBitmap(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode bitmap: %w", err)
	}
	return img, nil
}

// EncodeDrawable compresses the drawable as PNG.
func EncodeDrawable(img draw.Image) ([]byte, error) {
	if img == nil {
		return nil, ErrNilValue
	}
	return EncodeBitmap(img)
}

// DecodeDrawable decodes an image and returns it as a drawable canvas.
func DecodeDrawable(data []byte) (draw.Image, error) {
	img, err := DecodeBitmap(data)
	if err != nil {
		return nil, err
	}
	if drawable, ok := img.(draw.Image); ok {
		return drawable, nil
	}
	bounds := img.Bounds()
	canvas := image.NewNRGBA(bounds)
	draw.Draw(canvas, bounds, img, bounds.Min, draw.Src)
	return canvas, nil
}

// EncodeParcelable marshals a protobuf message.
func EncodeParcelable(message proto.Message) ([]byte, error) {
	if message == nil || !message.ProtoReflect().IsValid() {
		return nil, ErrNilValue
	}
	data, err := proto.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("encode parcelable: %w", err)
	}
	return data, nil
}

// DecodeParcelable unmarshals the data into a message produced by the creator.
func DecodeParcelable(data []byte, creator Creator) (proto.Message, error) {
	if data == nil {
		return nil, ErrEmptyInput
	}
	if creator == nil {
		return nil, errors.New("decode parcelable: nil creator")
	}
	message := creator()
	if message == nil {
		return nil, errors.New("decode parcelable: creator returned nil")
	}
	if err := proto.Unmarshal(data, message); err != nil {
		return nil, fmt.Errorf("decode parcelable: %w", err)
	}
	return message, nil
}

// EncodeSerializable gob-encodes the value. Its concrete type must be registered with gob.Register
// unless it is a basic type.
func EncodeSerializable(value interface{}) ([]byte, error) {
	if value == nil {
		return nil, ErrNilValue
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&value); err != nil {
		return nil, fmt.Errorf("encode serializable: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeSerializable decodes a gob-encoded value into its registered concrete type.
func DecodeSerializable(data []byte) (interface{}, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	var value interface{}
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&value); err != nil {
		return nil, fmt.Errorf("decode serializable: %w", err)
	}
	return value, nil
}

func marshalJSON(value interface{}) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return data, nil
}

func unmarshalJSON(data []byte, target interface{}) error {
	if len(data) == 0 {
		return ErrEmptyInput
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}
