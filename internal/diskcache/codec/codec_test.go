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

package codec

import (
	"encoding/gob"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type serializablePoint struct {
	X, Y int
	Tag  string
}

type unregisteredPoint struct {
	X int
}

func init() {
	gob.Register(serializablePoint{})
}

type CodecTestSuite struct {
	suite.Suite
}

func TestCodecSuite(t *testing.T) {
	suite.Run(t, new(CodecTestSuite))
}

func newTestImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 0, color.NRGBA{G: 255, A: 255})
	img.Set(2, 0, color.NRGBA{B: 255, A: 255})
	img.Set(0, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	img.Set(1, 1, color.NRGBA{A: 255})
	img.Set(2, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	return img
}

func assertSamePixels(t *testing.T, expected, actual image.Image) {
	require.Equal(t, expected.Bounds(), actual.Bounds())
	bounds := expected.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			er, eg, eb, ea := expected.At(x, y).RGBA()
			ar, ag, ab, aa := actual.At(x, y).RGBA()
			assert.Equal(t, []uint32{er, eg, eb, ea}, []uint32{ar, ag, ab, aa}, "pixel (%d,%d)", x, y)
		}
	}
}

func (suite *CodecTestSuite) TestBytes() {
	data, err := EncodeBytes([]byte{1, 2, 3})
	assert.NoError(suite.T(), err)

	decoded, err := DecodeBytes(data)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), []byte{1, 2, 3}, decoded)

	_, err = EncodeBytes(nil)
	assert.ErrorIs(suite.T(), err, ErrNilValue)

	_, err = DecodeBytes(nil)
	assert.ErrorIs(suite.T(), err, ErrEmptyInput)

	empty, err := EncodeBytes([]byte{})
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), empty)
}

func (suite *CodecTestSuite) TestString() {
	testCases := []string{"", "hello", "héllo wörld", "多字节"}

	for _, value := range testCases {
		decoded, err := DecodeString(EncodeString(value))
		assert.NoError(suite.T(), err)
		assert.Equal(suite.T(), value, decoded)
	}

	_, err := DecodeString(nil)
	assert.ErrorIs(suite.T(), err, ErrEmptyInput)
}

func (suite *CodecTestSuite) TestJSONObject() {
	value := map[string]interface{}{
		"name":   "cache",
		"count":  float64(3),
		"nested": map[string]interface{}{"ok": true},
	}

	data, err := EncodeJSONObject(value)
	assert.NoError(suite.T(), err)

	decoded, err := DecodeJSONObject(data)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), value, decoded)

	_, err = EncodeJSONObject(nil)
	assert.ErrorIs(suite.T(), err, ErrNilValue)
}

func (suite *CodecTestSuite) TestDecodeJSONObjectErrors() {
	testCases := []struct {
		name string
		data []byte
	}{
		{"Empty", nil},
		{"Null", []byte("null")},
		{"Array", []byte(`[1,2]`)},
		{"Malformed", []byte(`{"a":`)},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			value, err := DecodeJSONObject(tc.data)
			assert.Error(t, err)
			assert.Nil(t, value)
		})
	}
}

func (suite *CodecTestSuite) TestJSONArray() {
	value := []interface{}{"a", float64(1), true, map[string]interface{}{"k": "v"}}

	data, err := EncodeJSONArray(value)
	assert.NoError(suite.T(), err)

	decoded, err := DecodeJSONArray(data)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), value, decoded)

	_, err = EncodeJSONArray(nil)
	assert.ErrorIs(suite.T(), err, ErrNilValue)

	_, err = DecodeJSONArray([]byte(`{"k":"v"}`))
	assert.Error(suite.T(), err)

	_, err = DecodeJSONArray([]byte("null"))
	assert.Error(suite.T(), err)
}

func (suite *CodecTestSuite) TestBitmapPNG() {
	img := newTestImage()

	data, err := EncodeBitmap(img)
	assert.NoError(suite.T(), err)

	decoded, err := DecodeBitmap(data)
	assert.NoError(suite.T(), err)
	assertSamePixels(suite.T(), img, decoded)
}

func (suite *CodecTestSuite) TestBitmapJPEG() {
	img := newTestImage()

	data, err := EncodeBitmapAs(img, FormatJPEG, 90)
	assert.NoError(suite.T(), err)

	decoded, err := DecodeBitmap(data)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), img.Bounds(), decoded.Bounds())
}

func (suite *CodecTestSuite) TestBitmapErrors() {
	_, err := EncodeBitmap(nil)
	assert.ErrorIs(suite.T(), err, ErrNilValue)

	_, err = EncodeBitmapAs(newTestImage(), BitmapFormat(42), 100)
	assert.ErrorIs(suite.T(), err, ErrUnsupportedFormat)

	_, err = DecodeBitmap(nil)
	assert.ErrorIs(suite.T(), err, ErrEmptyInput)

	_, err = DecodeBitmap([]byte("definitely not an image"))
	assert.Error(suite.T(), err)
}

func (suite *CodecTestSuite) TestDrawable() {
	img := newTestImage()

	data, err := EncodeDrawable(img)
	assert.NoError(suite.T(), err)

	decoded, err := DecodeDrawable(data)
	assert.NoError(suite.T(), err)
	assertSamePixels(suite.T(), img, decoded)

	// The decoded drawable is a mutable canvas.
	decoded.Set(0, 0, color.NRGBA{B: 255, A: 255})
	_, _, b, _ := decoded.At(0, 0).RGBA()
	assert.Equal(suite.T(), uint32(0xffff), b)

	var nilDrawable draw.Image
	_, err = EncodeDrawable(nilDrawable)
	assert.ErrorIs(suite.T(), err, ErrNilValue)
}

func (suite *CodecTestSuite) TestDrawableFromJPEG() {
	data, err := EncodeBitmapAs(newTestImage(), FormatJPEG, 80)
	require.NoError(suite.T(), err)

	// JPEG decodes to a read-only YCbCr image which is copied onto a canvas.
	decoded, err := DecodeDrawable(data)
	assert.NoError(suite.T(), err)
	assert.IsType(suite.T(), &image.NRGBA{}, decoded)
	assert.Equal(suite.T(), image.Rect(0, 0, 3, 2), decoded.Bounds())
}

func (suite *CodecTestSuite) TestParcelable() {
	message := wrapperspb.String("parcel")

	data, err := EncodeParcelable(message)
	assert.NoError(suite.T(), err)

	decoded, err := DecodeParcelable(data, func() proto.Message { return &wrapperspb.StringValue{} })
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), proto.Equal(message, decoded))
}

func (suite *CodecTestSuite) TestParcelableStruct() {
	message, err := structpb.NewStruct(map[string]interface{}{"a": "b", "n": 2.5})
	require.NoError(suite.T(), err)

	data, err := EncodeParcelable(message)
	assert.NoError(suite.T(), err)

	decoded, err := DecodeParcelable(data, func() proto.Message { return &structpb.Struct{} })
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), proto.Equal(message, decoded))
}

func (suite *CodecTestSuite) TestParcelableErrors() {
	_, err := EncodeParcelable(nil)
	assert.ErrorIs(suite.T(), err, ErrNilValue)

	var nilMessage *wrapperspb.StringValue
	_, err = EncodeParcelable(nilMessage)
	assert.ErrorIs(suite.T(), err, ErrNilValue)

	creator := func() proto.Message { return &wrapperspb.StringValue{} }

	_, err = DecodeParcelable(nil, creator)
	assert.ErrorIs(suite.T(), err, ErrEmptyInput)

	_, err = DecodeParcelable([]byte{0x0a}, nil)
	assert.Error(suite.T(), err)

	_, err = DecodeParcelable([]byte{0x0a}, func() proto.Message { return nil })
	assert.Error(suite.T(), err)

	_, err = DecodeParcelable([]byte{0xff, 0xff, 0xff}, creator)
	assert.Error(suite.T(), err)
}

func (suite *CodecTestSuite) TestSerializable() {
	testCases := []struct {
		name  string
		value interface{}
	}{
		{"String", "serialized"},
		{"Int", 42},
		{"RegisteredStruct", serializablePoint{X: 1, Y: -2, Tag: "p"}},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			data, err := EncodeSerializable(tc.value)
			require.NoError(t, err)

			decoded, err := DecodeSerializable(data)
			assert.NoError(t, err)
			assert.Equal(t, tc.value, decoded)
		})
	}
}

func (suite *CodecTestSuite) TestSerializableErrors() {
	_, err := EncodeSerializable(nil)
	assert.True(suite.T(), errors.Is(err, ErrNilValue))

	_, err = EncodeSerializable(unregisteredPoint{X: 1})
	assert.Error(suite.T(), err)

	_, err = DecodeSerializable(nil)
	assert.ErrorIs(suite.T(), err, ErrEmptyInput)

	_, err = DecodeSerializable([]byte("garbage bytes"))
	assert.Error(suite.T(), err)
}
