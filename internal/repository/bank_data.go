package repository

import "github.com/aliskhannn/python-tutor-bot/internal/domain/entities"

func defaultQuestions() []BankTopic {
	return []BankTopic{
		{
			Difficulty: entities.DifficultyBeginner,
			Name:       "Variables & Data Types",
			Questions: []entities.Question{
				{
					Prompt: "What is the output of: x = 5; print(type(x))?",
					Options: []string{
						"<class 'int'>",
						"<class 'str'>",
						"<class 'float'>",
						"<class 'bool'>",
					},
					CorrectIndex: 0,
					Explanation:  "In Python, whole numbers are of type 'int' by default.",
				},
				{
					Prompt:       "Which is the correct way to create a string in Python?",
					Options:      []string{"'Hello'", "Hello", "@Hello", "Hello$"},
					CorrectIndex: 0,
					Explanation:  "Strings in Python are created using single or double quotes.",
				},
			},
		},
		{
			Difficulty: entities.DifficultyBeginner,
			Name:       "Control Flow",
			Questions: []entities.Question{
				{
					Prompt:       "What is the output of: if True: print('Python')?",
					Options:      []string{"Python", "True", "False", "Error"},
					CorrectIndex: 0,
					Explanation:  "When the if condition is True, the code block is executed.",
				},
				{
					Prompt:       "How many times does the body of: for i in range(3): ... run?",
					Options:      []string{"2", "3", "4", "Forever"},
					CorrectIndex: 1,
					Explanation:  "range(3) yields 0, 1 and 2, so the body runs three times.",
				},
			},
		},
		{
			Difficulty: entities.DifficultyIntermediate,
			Name:       "Functions",
			Questions: []entities.Question{
				{
					Prompt:       "What is the output of:\ndef func(x, y=10): return x + y\nprint(func(5))?",
					Options:      []string{"15", "5", "10", "Error"},
					CorrectIndex: 0,
					Explanation:  "When y is not provided, it uses the default value 10.",
				},
				{
					Prompt:       "What does a function without a return statement return?",
					Options:      []string{"0", "None", "An empty string", "It raises an error"},
					CorrectIndex: 1,
					Explanation:  "Functions that finish without return implicitly return None.",
				},
			},
		},
		{
			Difficulty: entities.DifficultyIntermediate,
			Name:       "Lists",
			Questions: []entities.Question{
				{
					Prompt: "What is the output of: [1, 2, 3].append([4, 5])?",
					Options: []string{
						"[1, 2, 3, [4, 5]]",
						"[1, 2, 3, 4, 5]",
						"[1, 2, 3]",
						"Error",
					},
					CorrectIndex: 0,
					Explanation:  "append() adds the entire object as a single element.",
				},
				{
					Prompt:       "What is the value of: [1, 2, 3, 4][1:3]?",
					Options:      []string{"[1, 2]", "[2, 3]", "[2, 3, 4]", "[1, 2, 3]"},
					CorrectIndex: 1,
					Explanation:  "Slicing includes the start index and excludes the stop index.",
				},
			},
		},
		{
			Difficulty: entities.DifficultyAdvanced,
			Name:       "Classes & Objects",
			Questions: []entities.Question{
				{
					Prompt:       "What is the output of:\nclass A:\n    def __init__(self): print('A')\nA()?",
					Options:      []string{"A", "None", "Error", "Object"},
					CorrectIndex: 0,
					Explanation:  "The constructor prints 'A' when the object is created.",
				},
				{
					Prompt:       "Which method is called by str(obj)?",
					Options:      []string{"__repr__", "__str__", "__format__", "__init__"},
					CorrectIndex: 1,
					Explanation:  "str() calls __str__ and falls back to __repr__ if it is not defined.",
				},
			},
		},
		{
			Difficulty: entities.DifficultyAdvanced,
			Name:       "Generators",
			Questions: []entities.Question{
				{
					Prompt:       "What type of object is returned by a generator function?",
					Options:      []string{"Generator iterator", "List", "Tuple", "Dictionary"},
					CorrectIndex: 0,
					Explanation:  "Generator functions return generator iterator objects.",
				},
				{
					Prompt:       "What is raised when next() is called on an exhausted generator?",
					Options:      []string{"ValueError", "IndexError", "StopIteration", "Nothing"},
					CorrectIndex: 2,
					Explanation:  "An exhausted iterator signals the end by raising StopIteration.",
				},
			},
		},
	}
}
