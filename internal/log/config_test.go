package log

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zapcore"
)

type ModuleLevelSuite struct {
	suite.Suite
	originalEnvFunc func(string) (string, bool)
	testEnv         map[string]string
}

func TestModuleLevelSuite(t *testing.T) {
	suite.Run(t, new(ModuleLevelSuite))
}

func (s *ModuleLevelSuite) SetupTest() {
	s.originalEnvFunc = envFunc
	s.testEnv = make(map[string]string)
	envFunc = func(key string) (string, bool) {
		v, ok := s.testEnv[key]
		return v, ok && v != ""
	}
}

func (s *ModuleLevelSuite) TearDownTest() {
	envFunc = s.originalEnvFunc
}

func (s *ModuleLevelSuite) TestDefaultsToInfo() {
	s.Equal(zapcore.InfoLevel, moduleLevel([]string{"Session"}))
	s.Equal(zapcore.InfoLevel, moduleLevel(nil))
}

func (s *ModuleLevelSuite) TestGlobalLevel() {
	s.testEnv["LOG_LEVEL"] = "debug"
	s.Equal(zapcore.DebugLevel, moduleLevel([]string{"Session"}))
}

func (s *ModuleLevelSuite) TestMostSpecificWins() {
	s.testEnv["LOG_LEVEL"] = "warn"
	s.testEnv["LOG_LEVEL__SESSION"] = "info"
	s.testEnv["LOG_LEVEL__SESSION__CONN_MGR"] = "debug"

	s.Equal(zapcore.DebugLevel, moduleLevel([]string{"Session", "ConnMgr"}))
	s.Equal(zapcore.InfoLevel, moduleLevel([]string{"Session", "Hook"}))
	s.Equal(zapcore.WarnLevel, moduleLevel([]string{"Registry"}))
}

func (s *ModuleLevelSuite) TestInvalidLevelFallsThrough() {
	s.testEnv["LOG_LEVEL__ROOM_SVC"] = "loud"
	s.testEnv["LOG_LEVEL"] = "error"
	s.Equal(zapcore.ErrorLevel, moduleLevel([]string{"RoomSvc"}))
}

func (s *ModuleLevelSuite) TestLevelKeysOrder() {
	s.Equal([]string{
		"LOG_LEVEL__HTTP_SERVER__WEB_SOCKET",
		"LOG_LEVEL__HTTP_SERVER",
		"LOG_LEVEL",
	}, levelKeys([]string{"HTTPServer", "WebSocket"}))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
		ok    bool
	}{
		{"debug", zapcore.DebugLevel, true},
		{"WARN", zapcore.WarnLevel, true},
		{"Error", zapcore.ErrorLevel, true},
		{"trace", zapcore.InfoLevel, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lv, ok := parseLevel(tt.input)
			if ok != tt.ok || lv != tt.want {
				t.Fatalf("parseLevel(%q) = %v, %v; want %v, %v", tt.input, lv, ok, tt.want, tt.ok)
			}
		})
	}
}
