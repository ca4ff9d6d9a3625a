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
	"net"
	"net/http"
	"time"
)

const (
	pathValueCacheName = "name"
	pathValueEntryKey  = "key"
)

// AccessLogHandler logs every request once it is served. Requests routed to a named cache carry
// the cache name, and entry reads also report whether they hit the cache.
func AccessLogHandler(logger *Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(recorder, r)

		fields := []Field{
			String("remote", remoteHost(r.RemoteAddr)),
			String("method", r.Method),
			String("path", r.URL.Path),
			Int("status", recorder.statusCode),
			Int("bytes", recorder.size),
			Int64("durationMs", time.Since(start).Milliseconds()),
		}

		// Path values are set by the mux on the shared request while routing.
		if name := r.PathValue(pathValueCacheName); name != "" {
			fields = append(fields, String(LoggerKeyCacheName, name))
			if r.Method == http.MethodGet && r.PathValue(pathValueEntryKey) != "" {
				fields = append(fields, Bool("cacheHit", recorder.statusCode == http.StatusOK))
			}
		}

		if recorder.statusCode >= http.StatusInternalServerError {
			logger.Warn("Request failed", fields...)
			return
		}
		logger.Info("Request served", fields...)
	})
}

func remoteHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil || host == "" {
		return remoteAddr
	}
	return host
}

// statusRecorder keeps the status code and body size written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.statusCode = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	n, err := s.ResponseWriter.Write(b)
	s.size += n
	return n, err
}
