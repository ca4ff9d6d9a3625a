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

package log

import (
	"bytes"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/asgardeo/diskcache/internal/system/constants"
)

type LogTestSuite struct {
	suite.Suite
	originalLogLevel string
}

func TestLogSuite(t *testing.T) {
	suite.Run(t, new(LogTestSuite))
}

func (suite *LogTestSuite) SetupTest() {
	suite.originalLogLevel = os.Getenv(constants.LogLevelEnvironmentVariable)
}

func (suite *LogTestSuite) TearDownTest() {
	err := os.Setenv(constants.LogLevelEnvironmentVariable, suite.originalLogLevel)
	if err != nil {
		suite.T().Errorf("Failed to restore environment variable: %v", err)
	}

	// Reset logger singleton for next test
	logger = nil
	once = sync.Once{}
}

func (suite *LogTestSuite) TestGetLoggerWithEnvironmentVariable() {
	testCases := []struct {
		name     string
		logLevel string
		isValid  bool
	}{
		{"DefaultLevel", "", true},
		{"DebugLevel", "debug", true},
		{"InfoLevel", "info", true},
		{"WarnLevel", "warn", true},
		{"ErrorLevel", "error", true},
		{"InvalidLevel", "unknown", false},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			logger = nil
			once = sync.Once{}

			if tc.logLevel != "" {
				assert.NoError(t, os.Setenv(constants.LogLevelEnvironmentVariable, tc.logLevel))
			} else {
				assert.NoError(t, os.Unsetenv(constants.LogLevelEnvironmentVariable))
			}

			if tc.isValid {
				assert.NotPanics(t, func() {
					assert.NotNil(t, GetLogger())
				})
			} else {
				assert.Panics(t, func() {
					_ = GetLogger()
				})
			}
		})
	}
}

func (suite *LogTestSuite) TestGetLoggerIsSingleton() {
	assert.NoError(suite.T(), os.Unsetenv(constants.LogLevelEnvironmentVariable))
	assert.Same(suite.T(), GetLogger(), GetLogger())
}

func (suite *LogTestSuite) TestParseLogLevel() {
	testCases := []struct {
		name      string
		logLevel  string
		expected  zapcore.Level
		expectErr bool
	}{
		{"Debug", "debug", zapcore.DebugLevel, false},
		{"Info", "info", zapcore.InfoLevel, false},
		{"Warn", "warn", zapcore.WarnLevel, false},
		{"Error", "error", zapcore.ErrorLevel, false},
		{"Invalid", "invalid", zapcore.ErrorLevel, true},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			level, err := parseLogLevel(tc.logLevel)
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expected, level)
		})
	}
}

func (suite *LogTestSuite) TestInitLoggerWritesConsoleFormat() {
	var buf bytes.Buffer
	assert.NoError(suite.T(), os.Setenv(constants.LogLevelEnvironmentVariable, "debug"))

	err := initLogger(zapcore.AddSync(&buf))
	assert.NoError(suite.T(), err)

	logger.Debug("Debug message", String("test", "debug"))
	logger.Info("Info message", Int("count", 3))
	logger.Sync()

	output := buf.String()
	assert.Contains(suite.T(), output, "DEBUG")
	assert.Contains(suite.T(), output, "Debug message")
	assert.Contains(suite.T(), output, `"test": "debug"`)
	assert.Contains(suite.T(), output, "INFO")
	assert.Contains(suite.T(), output, `"count": 3`)
	assert.True(suite.T(), logger.IsDebugEnabled())
}

func (suite *LogTestSuite) TestInitLoggerRespectsLevel() {
	var buf bytes.Buffer
	assert.NoError(suite.T(), os.Setenv(constants.LogLevelEnvironmentVariable, "warn"))

	assert.NoError(suite.T(), initLogger(zapcore.AddSync(&buf)))

	logger.Info("Hidden message")
	logger.Warn("Visible message")

	output := buf.String()
	assert.NotContains(suite.T(), output, "Hidden message")
	assert.Contains(suite.T(), output, "Visible message")
	assert.False(suite.T(), logger.IsDebugEnabled())
}

func (suite *LogTestSuite) TestLogMethods() {
	core, logs := observer.New(zapcore.DebugLevel)
	log := &Logger{internal: zap.New(core)}

	log.Debug("Debug message", Field{Key: "test", Value: "debug"})
	log.Info("Info message", Field{Key: "test", Value: "info"})
	log.Warn("Warning message", Field{Key: "test", Value: "warn"})
	log.Error("Error message", Field{Key: "test", Value: "error"})

	entries := logs.All()
	assert.Len(suite.T(), entries, 4)

	expected := []struct {
		level   zapcore.Level
		message string
		value   string
	}{
		{zapcore.DebugLevel, "Debug message", "debug"},
		{zapcore.InfoLevel, "Info message", "info"},
		{zapcore.WarnLevel, "Warning message", "warn"},
		{zapcore.ErrorLevel, "Error message", "error"},
	}
	for i, exp := range expected {
		assert.Equal(suite.T(), exp.level, entries[i].Level)
		assert.Equal(suite.T(), exp.message, entries[i].Message)
		assert.Equal(suite.T(), exp.value, entries[i].ContextMap()["test"])
	}
}

func (suite *LogTestSuite) TestLoggerWith() {
	core, logs := observer.New(zapcore.DebugLevel)
	log := &Logger{internal: zap.New(core)}

	contextLogger := log.With(String(LoggerKeyComponentName, "DiskCacheManager"))
	assert.NotNil(suite.T(), contextLogger)

	contextLogger.Info("Context log message", Int64("size", 42))

	assert.Equal(suite.T(), 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(suite.T(), "DiskCacheManager", fields[LoggerKeyComponentName])
	assert.Equal(suite.T(), int64(42), fields["size"])
}

func (suite *LogTestSuite) TestFieldHelpers() {
	err := errors.New("boom")

	testCases := []struct {
		name     string
		field    Field
		key      string
		expected interface{}
	}{
		{"String", String("k", "v"), "k", "v"},
		{"Int", Int("k", 7), "k", 7},
		{"Int64", Int64("k", 7), "k", int64(7)},
		{"Bool", Bool("k", true), "k", true},
		{"Any", Any("k", []string{"a"}), "k", []string{"a"}},
		{"Error", Error(err), "error", err},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.key, tc.field.Key)
			assert.Equal(t, tc.expected, tc.field.Value)
		})
	}
}

func (suite *LogTestSuite) TestConvertFields() {
	fields := []Field{
		{Key: "string", Value: "value"},
		{Key: "int", Value: 42},
		{Key: "bool", Value: true},
	}

	zapFields := convertFields(fields)
	assert.Equal(suite.T(), 3, len(zapFields))

	core, logs := observer.New(zapcore.DebugLevel)
	zap.New(core).Info("test", zapFields...)

	fieldMap := logs.All()[0].ContextMap()
	assert.Equal(suite.T(), "value", fieldMap["string"])
	assert.Equal(suite.T(), int64(42), fieldMap["int"])
	assert.Equal(suite.T(), true, fieldMap["bool"])
}
