package docindex

const sampleIndex = `{
  "repository_name": "sample",
  "program": {
    "id": "sample/toplevel",
    "path": "toplevel.html",
    "kind": "module",
    "full_name": "Top Level Namespace",
    "name": "Top Level Namespace",
    "types": [
      {
        "id": "sample/Foo",
        "path": "Foo.html",
        "kind": "module",
        "full_name": "Foo",
        "name": "Foo",
        "instance_methods": [
          {"id": "bar-instance-method", "name": "bar", "args": [], "args_string": ""}
        ]
      }
    ]
  }
}`

const sampleJSONP = JSONPCallback + "(" + sampleIndex + ");\n"
